package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition возвращается при нарушении машины состояний приёма.
// Конкретная ошибка - InvalidTransitionError, она называет текущий статус.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError ошибка перехода из терминального статуса.
// Текст стабилен и показывается клиенту как есть.
type InvalidTransitionError struct {
	Action string            // что пытались сделать: update, cancel, complete
	Status AppointmentStatus // текущий статус приёма
}

// Error возвращает сообщение вида "Cannot cancel a completed appointment"
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Cannot %s a %s appointment", e.Action, e.Status)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrInvalidTransition)
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
