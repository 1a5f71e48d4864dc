package safari

import (
	"context"
	"log"
	"time"

	"safari_go/models"
)

// RunHuntLoop — цикл отправки охотничьих команд одного аккаунта.
// Работает, пока включена охота и жива сессия; сам себя не останавливает
// ни при каких ошибках — только явный стоп или блокировка со стороны сервера.
func RunHuntLoop(ctx context.Context, deps Deps, s *Session) {
	if !s.beginLoop() {
		// Цикл уже запущен повторным событием входа в зону.
		return
	}
	defer s.endLoop()

	log.Printf("[HUNT] аккаунт %d: цикл охоты запущен", s.AccountID)

	for {
		if ctx.Err() != nil {
			return
		}
		if !deps.Messenger.IsConnected() {
			log.Printf("[HUNT] аккаунт %d: соединение потеряно, цикл остановлен", s.AccountID)
			return
		}
		if !s.Hunting() {
			log.Printf("[HUNT] аккаунт %d: охота выключена, цикл остановлен", s.AccountID)
			return
		}
		// В бою команды не шлём; ждём, пока диспетчер вернёт поиск.
		if s.Mode() == ModeEngaged {
			if !sleepCtx(ctx, time.Second) {
				return
			}
			continue
		}

		// Смотрим два последних сообщения: самое свежее может оказаться
		// нашей же командой, на которую сервер ещё не ответил.
		msgs, err := deps.Messenger.RecentMessages(ctx, 2)
		if err != nil {
			log.Printf("[HUNT] аккаунт %d: чтение истории: %v", s.AccountID, err)
			if !sleepCtx(ctx, 5*time.Second) {
				return
			}
			continue
		}
		if delay := pendingWait(msgs); delay > 0 {
			log.Printf("[WAIT] аккаунт %d: пауза %.2fс по требованию сервера",
				s.AccountID, delay.Seconds())
			if !sleepCtx(ctx, delay) {
				return
			}
			continue
		}

		SendCommand(ctx, deps.Messenger, HuntCommand)

		// Ожидание интервала прерывается досрочно, если параллельно
		// доставленное событие перевело машину в ENGAGED.
		interval := time.Duration(s.Interval() * float64(time.Second))
		select {
		case <-s.EngagedSignal():
		case <-time.After(interval):
		case <-ctx.Done():
			return
		}
	}
}

// pendingWait ищет среди последних сообщений неучтённое требование подождать
// и возвращает длительность паузы с человеческим запасом.
func pendingWait(msgs []Inbound) time.Duration {
	for _, m := range msgs {
		ev := Classify(m.Text, m.Buttons)
		if ev.Kind != models.EventWaitNotice {
			continue
		}
		if ev.WaitSeconds > 0 {
			return time.Duration(float64(ev.WaitSeconds)*float64(time.Second)) + randDuration(1.5, 3.0)
		}
		// Число не извлеклось — берём запасное окно.
		return randDuration(5, 10)
	}
	return 0
}
