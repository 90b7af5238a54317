package domain

import "time"

// Clinic represents a clinic in the directory.
// Клиника в приёме чисто информационная: доступность слотов
// от нее не зависит.
type Clinic struct {
	ID        int64
	Name      string
	Address   string
	City      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
