package create_appointment

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден или неактивен
	ErrDoctorNotFound = errors.New("create_appointment: doctor not found")

	// ErrClinicNotFound возвращается, когда клиника не найдена
	ErrClinicNotFound = errors.New("create_appointment: clinic not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят другим приёмом
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrSlotNotInTemplate возвращается, когда время не входит в шаблон врача
	// на этот день недели
	ErrSlotNotInTemplate = errors.New("create_appointment: slot is not in doctor's schedule")

	// ErrInvalidDate возвращается при попытке записи на прошедшую дату
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
