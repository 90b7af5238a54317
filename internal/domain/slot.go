package domain

import "github.com/abhinavxdd/MediQueue/pkg/types"

// Slot is a bookable time window for a doctor on a concrete date.
// Слот всегда вычисляется из шаблона врача и живых приёмов,
// отдельно он нигде не хранится.
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}

// Label возвращает метку слота - время начала в формате HH:MM
func (s *Slot) Label() string {
	return s.StartTime.String()
}
