package safari

import (
	"context"
	"log"
	"os"

	"safari_go/models"
)

// HandleEvent — единственная точка реакции машины состояний на входящие
// события. Вызывается последовательно из одной горутины на аккаунт, поэтому
// порядок событий сохраняется, а задержки внутри обработчика просто
// откладывают следующее событие.
func HandleEvent(ctx context.Context, deps Deps, s *Session, ev models.Event) {
	switch ev.Kind {
	case models.EventZoneEntered:
		s.StartSearching()
		owner, group := s.NotifyTarget()
		deps.Notifier.Notify(owner, group, "[+] Safari Session Started!", "")
		go RunHuntLoop(ctx, deps, s)
		return

	case models.EventZoneAlreadyIn:
		// Сообщение «уже в зоне» что-то значит только пока мы пытаемся войти.
		if s.Mode() != ModeSafariInit {
			return
		}
		s.StartSearching()
		go RunHuntLoop(ctx, deps, s)
		return
	}

	if !s.Hunting() {
		return
	}

	switch ev.Kind {
	case models.EventSessionBlocked:
		s.Stop()
		owner, group := s.NotifyTarget()
		deps.Notifier.Notify(owner, group, "[!] Session Ended:\n"+ev.Summary, "")
		log.Printf("[HUNT] аккаунт %d: сессия закрыта сервером: %s", s.AccountID, ev.Summary)

	case models.EventCatchSuccess:
		handleCatch(ctx, deps, s, ev)

	case models.EventBattlePrompt:
		handleBattle(ctx, deps, s, ev)

	case models.EventSpawn:
		handleSpawn(ctx, deps, s, ev)

	default:
		// Нераспознанный текст и предупреждения об ожидании машину не трогают:
		// ожидания отрабатывает сам цикл охоты по последним сообщениям.
		log.Printf("[CLASSIFY] аккаунт %d: событие %s пропущено", s.AccountID, ev.Kind)
	}
}

// handleCatch фиксирует поимку и возвращает машину к поиску.
func handleCatch(ctx context.Context, deps Deps, s *Session, ev models.Event) {
	if err := deps.Stats.IncrementStat(s.AccountID, models.StatCaught); err != nil {
		log.Printf("[STATS] аккаунт %d: счётчик поимок: %v", s.AccountID, err)
	}
	s.BumpStat(models.StatCaught)
	// Правки этого сообщения больше не должны запускать бросок.
	s.MarkResolved(ev.MsgID)

	path := ""
	if ev.HasMedia {
		p, err := deps.Messenger.DownloadMedia(ctx, ev.MsgID)
		if err != nil {
			log.Printf("[HUNT] аккаунт %d: вложение поимки: %v", s.AccountID, err)
		} else {
			path = p
		}
	}

	owner, group := s.NotifyTarget()
	deps.Notifier.Notify(owner, group, ev.Summary, path)
	if path != "" {
		if err := os.Remove(path); err != nil {
			log.Printf("[HUNT] аккаунт %d: удаление вложения: %v", s.AccountID, err)
		}
	}

	s.SetMode(ModeSearching)
}

// handleBattle бросает мяч по экрану боя. Неудачное нажатие не меняет режим:
// машина остаётся в ENGAGED до следующего входящего события.
func handleBattle(ctx context.Context, deps Deps, s *Session, ev models.Event) {
	if s.IsResolved(ev.MsgID) {
		return
	}
	s.SetMode(ModeEngaged)
	// Пауза перед броском, как у живого игрока.
	if !sleepCtx(ctx, randDuration(2.0, 4.0)) {
		return
	}
	if !ClickButton(ctx, deps.Messenger, ev.MsgID, ThrowButtonLabel) {
		log.Printf("[HUNT] аккаунт %d: кнопка %q недоступна в сообщении %d",
			s.AccountID, ThrowButtonLabel, ev.MsgID)
	}
}

// handleSpawn решает, вступать ли в бой за появившееся существо.
func handleSpawn(ctx context.Context, deps Deps, s *Session, ev models.Event) {
	shouldCatch := false

	if ev.Shiny {
		shouldCatch = true
		if err := deps.Stats.IncrementStat(s.AccountID, models.StatShiny); err != nil {
			log.Printf("[STATS] аккаунт %d: счётчик шайни: %v", s.AccountID, err)
		}
		s.BumpStat(models.StatShiny)
		owner, group := s.NotifyTarget()
		deps.Notifier.Notify(owner, group, "★ SHINY DETECTED: "+ev.Name, "")
	} else if s.MatchesWatchlist(ev.Name) {
		shouldCatch = true
	}

	if !shouldCatch {
		// Неинтересное существо игнорируем: поиск продолжит сам цикл охоты.
		return
	}
	if s.IsResolved(ev.MsgID) {
		return
	}

	if err := deps.Stats.IncrementStat(s.AccountID, models.StatMatched); err != nil {
		log.Printf("[STATS] аккаунт %d: счётчик совпадений: %v", s.AccountID, err)
	}
	s.BumpStat(models.StatMatched)

	s.SetMode(ModeEngaged)
	if !sleepCtx(ctx, randDuration(0.5, 1.5)) {
		return
	}
	if !ClickButton(ctx, deps.Messenger, ev.MsgID, EngageButtonLabel) {
		log.Printf("[HUNT] аккаунт %d: кнопка %q недоступна в сообщении %d",
			s.AccountID, EngageButtonLabel, ev.MsgID)
	}
}
