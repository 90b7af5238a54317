package domain

// Business validation constants
const (
	MaxReasonLength       = 500
	MaxCancelReasonLength = 500
	MaxNotesLength        = 1000
)

// DefaultCancelReason подставляется, если причина отмены не указана
const DefaultCancelReason = "No reason provided"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AppointmentStatuses все допустимые статусы приёма
var AppointmentStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
	StatusCancelled,
}

// IsValidStatus проверяет, что строка является допустимым статусом
func IsValidStatus(s string) bool {
	for _, status := range AppointmentStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}
