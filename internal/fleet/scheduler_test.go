package fleet

import (
	"testing"

	"safari_go/models"
	"safari_go/pkg/safari"
)

func scheduledSession(timeStr string, active bool) *safari.Session {
	return safari.NewSession(models.Account{
		ID:             1,
		ScheduleTime:   &timeStr,
		ScheduleActive: active,
	})
}

// TestScheduleDue проверяет условие автозапуска: время совпало,
// расписание включено, аккаунт простаивает.
func TestScheduleDue(t *testing.T) {
	s := scheduledSession("10:30 AM", true)
	if !scheduleDue(s, "10:30 AM") {
		t.Errorf("совпавшее время должно запускать аккаунт")
	}
	if scheduleDue(s, "10:31 AM") {
		t.Errorf("чужая минута запускать не должна")
	}
}

// TestScheduleDueInactive проверяет, что выключенное расписание не срабатывает.
func TestScheduleDueInactive(t *testing.T) {
	s := scheduledSession("10:30 AM", false)
	if scheduleDue(s, "10:30 AM") {
		t.Errorf("выключенное расписание не должно запускать аккаунт")
	}
}

// TestScheduleDueAlreadyHunting проверяет, что охотящийся аккаунт не запускается повторно.
func TestScheduleDueAlreadyHunting(t *testing.T) {
	s := scheduledSession("10:30 AM", true)
	s.StartSearching()
	if scheduleDue(s, "10:30 AM") {
		t.Errorf("активная охота исключает автозапуск")
	}
}

// TestScheduleDueWithoutSchedule проверяет аккаунт без расписания.
func TestScheduleDueWithoutSchedule(t *testing.T) {
	s := safari.NewSession(models.Account{ID: 1})
	if scheduleDue(s, "10:30 AM") {
		t.Errorf("аккаунт без расписания не должен запускаться")
	}
}
