package domain

// Role роль аутентифицированного пользователя
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Actor аутентифицированный пользователь запроса.
// Identity-сервис отвечает за выпуск токенов; здесь нужны только
// идентификатор и роль для проверок доступа.
type Actor struct {
	ID   int64
	Role Role
}

// IsPatient возвращает true, если актор - пациент
func (a Actor) IsPatient() bool {
	return a.Role == RolePatient
}

// IsDoctor возвращает true, если актор - врач
func (a Actor) IsDoctor() bool {
	return a.Role == RoleDoctor
}
