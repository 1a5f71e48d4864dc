package safari

import (
	"testing"

	"safari_go/models"
)

// TestMatchesWatchlist проверяет сопоставление имени существа со списком:
// подстрока без учёта регистра.
func TestMatchesWatchlist(t *testing.T) {
	s := testSession([]string{"Mewtwo", "Lugia"})

	if !s.MatchesWatchlist("mewtwo") {
		t.Errorf("регистр не должен влиять на сопоставление")
	}
	if !s.MatchesWatchlist("✨Lugia✨") {
		t.Errorf("глифы вокруг имени не должны мешать сопоставлению")
	}
	if s.MatchesWatchlist("Rattata") {
		t.Errorf("существо вне списка не должно совпадать")
	}
}

// TestNotifyTarget проверяет выбор адресатов отчёта.
func TestNotifyTarget(t *testing.T) {
	s := testSession(nil)

	owner, group := s.NotifyTarget()
	if owner != 100 || group != 0 {
		t.Errorf("без группы отчёт идёт только владельцу: %d %d", owner, group)
	}

	s.SetNotification(true, -500)
	if _, group = s.NotifyTarget(); group != -500 {
		t.Errorf("при включённой группе ожидался её id, получено %d", group)
	}

	// Флаг без идентификатора группы игнорируется.
	s.SetNotification(true, 0)
	if _, group = s.NotifyTarget(); group != 0 {
		t.Errorf("группа без id не должна получать отчёты")
	}
}

// TestResetDailyStats проверяет, что суточный сброс не трогает накопительные счётчики.
func TestResetDailyStats(t *testing.T) {
	s := testSession(nil)
	s.BumpStat(models.StatCaught)
	s.BumpStat(models.StatShiny)

	s.ResetDailyStats()

	snap := s.StatsSnapshot()
	if snap.DailyCaught != 0 || snap.DailyShiny != 0 {
		t.Errorf("суточные счётчики должны обнулиться: %+v", snap)
	}
	if snap.TotalCaught != 1 || snap.TotalShiny != 1 {
		t.Errorf("накопительные счётчики должны сохраниться: %+v", snap)
	}
}

// TestNewSessionIntervalFloor проверяет, что некорректный интервал из базы
// заменяется значением по умолчанию.
func TestNewSessionIntervalFloor(t *testing.T) {
	s := NewSession(models.Account{ID: 1, Interval: 0})
	if s.Interval() != DefaultInterval {
		t.Errorf("ожидался интервал %v, получен %v", DefaultInterval, s.Interval())
	}
}
