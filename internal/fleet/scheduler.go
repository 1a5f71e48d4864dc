package fleet

import (
	"context"
	"log"
	"time"

	"safari_go/pkg/safari"
)

// ScheduleLayout — формат времени автозапуска, как его вводит владелец.
const ScheduleLayout = "03:04 PM"

// istLocation возвращает часовой пояс игры (владельцы задают время в IST).
func istLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// RunScheduler тикает на границе каждой минуты: в час сброса обнуляет
// суточные счётчики, в остальное время запускает аккаунты по расписанию.
func (f *Fleet) RunScheduler(ctx context.Context, resetHour int) {
	loc := istLocation()
	log.Printf("[SCHEDULER] запущен, сброс счётчиков в %02d:00", resetHour)

	for {
		now := time.Now().In(loc)

		if now.Hour() == resetHour && now.Minute() == 0 {
			if err := f.db.ResetDailyStats(); err != nil {
				log.Printf("[SCHEDULER] суточный сброс: %v", err)
			}
			f.ResetDailyMirrors()
			// Пережидаем минуту, чтобы не сбросить дважды за один тик.
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Minute):
			}
			continue
		}

		current := now.Format(ScheduleLayout)
		for _, r := range f.Snapshot() {
			if !scheduleDue(r.Session, current) {
				continue
			}
			if err := f.StartHunt(r.Session.AccountID); err != nil {
				log.Printf("[SCHEDULER] автозапуск аккаунта %d: %v", r.Session.AccountID, err)
				continue
			}
			owner, group := r.Session.NotifyTarget()
			f.notifier.Notify(owner, group, "⏰ Schedule Triggered!\nAuto-started at "+current, "")
			log.Printf("[SCHEDULER] аккаунт %d запущен по расписанию %s", r.Session.AccountID, current)
		}

		// Спим до начала следующей минуты.
		pause := time.Duration(60-time.Now().In(loc).Second()) * time.Second
		select {
		case <-ctx.Done():
			return
		case <-time.After(pause):
		}
	}
}

// scheduleDue решает, пора ли автозапускать аккаунт в указанную минуту.
func scheduleDue(s *safari.Session, current string) bool {
	scheduled, active := s.Schedule()
	return active && scheduled == current && !s.Hunting()
}
