package get_available_slots

import (
	"time"

	"github.com/abhinavxdd/MediQueue/internal/domain"
	"github.com/abhinavxdd/MediQueue/pkg/types"
)

// resolveSlots вычисляет слоты врача на дату: кандидаты берутся из недельного
// шаблона для дня недели даты, занятость - по приёмам, не отменённым на эту
// дату. Слот занят, если есть приём с тем же временем начала.
//
// Слоты нигде не хранятся и не мутируются - это единственный источник
// правды о доступности.
func resolveSlots(template []domain.TemplateSlot, appointments []*domain.Appointment) []domain.Slot {
	occupied := occupiedStartTimes(appointments)

	slots := make([]domain.Slot, len(template))
	for i, entry := range template {
		_, taken := occupied[entry.StartTime]
		slots[i] = domain.Slot{
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			Available: !taken,
		}
	}

	return slots
}

// occupiedStartTimes собирает времена начала неотменённых приёмов
func occupiedStartTimes(appointments []*domain.Appointment) map[types.TimeString]struct{} {
	occupied := make(map[types.TimeString]struct{}, len(appointments))
	for _, appt := range appointments {
		if !appt.OccupiesSlot() {
			continue
		}
		occupied[appt.StartTime] = struct{}{}
	}
	return occupied
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
