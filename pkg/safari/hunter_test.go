package safari

import (
	"context"
	"testing"
	"time"
)

// TestPendingWaitExplicit проверяет паузу по явному числу секунд:
// к требуемому времени добавляется человеческий запас от 1.5 до 3 секунд.
func TestPendingWaitExplicit(t *testing.T) {
	msgs := []Inbound{{Text: "Please wait 12 seconds before hunting again."}}
	d := pendingWait(msgs)
	if d < 13500*time.Millisecond || d >= 15*time.Second {
		t.Errorf("ожидалась пауза в [13.5с, 15с), получено %v", d)
	}
}

// TestPendingWaitKeywordOnly проверяет запасное окно, когда число не извлеклось.
func TestPendingWaitKeywordOnly(t *testing.T) {
	msgs := []Inbound{{Text: "Wait a few seconds, hunter!"}}
	d := pendingWait(msgs)
	if d < 5*time.Second || d >= 10*time.Second {
		t.Errorf("ожидалась пауза в [5с, 10с), получено %v", d)
	}
}

// TestPendingWaitNone проверяет, что обычные сообщения паузы не требуют.
func TestPendingWaitNone(t *testing.T) {
	msgs := []Inbound{
		{Text: "A wild Pikachu (Lv 12) has appeared!"},
		{Text: "/hunt"},
	}
	if d := pendingWait(msgs); d != 0 {
		t.Errorf("пауза не нужна, получено %v", d)
	}
}

// TestRunHuntLoopSendsAndStops проверяет, что цикл шлёт команды охоты
// и завершается после выключения.
func TestRunHuntLoopSendsAndStops(t *testing.T) {
	deps, m, _, _ := testDeps()
	s := testSession(nil)
	s.StartSearching()

	done := make(chan struct{})
	go func() {
		RunHuntLoop(context.Background(), deps, s)
		close(done)
	}()

	deadline := time.After(3 * time.Second)
	for m.sentCount() == 0 {
		select {
		case <-deadline:
			t.Fatalf("цикл не отправил ни одной команды")
		case <-time.After(50 * time.Millisecond):
		}
	}

	s.Stop()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("цикл не завершился после остановки охоты")
	}
}

// TestRunHuntLoopSingleInstance проверяет защиту от второго цикла на аккаунт.
func TestRunHuntLoopSingleInstance(t *testing.T) {
	s := testSession(nil)
	if !s.beginLoop() {
		t.Fatalf("первый запуск цикла должен быть разрешён")
	}
	if s.beginLoop() {
		t.Errorf("второй цикл на тот же аккаунт запускаться не должен")
	}
	s.endLoop()
	if !s.beginLoop() {
		t.Errorf("после завершения цикл должен запускаться снова")
	}
}

// TestRunHuntLoopStopsWhenDisconnected проверяет выход цикла при потере сессии.
func TestRunHuntLoopStopsWhenDisconnected(t *testing.T) {
	deps, m, _, _ := testDeps()
	m.offline = true
	s := testSession(nil)
	s.StartSearching()

	done := make(chan struct{})
	go func() {
		RunHuntLoop(context.Background(), deps, s)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("цикл обязан завершиться без соединения")
	}
	if m.sentCount() != 0 {
		t.Errorf("без соединения команды отправляться не должны")
	}
}

// TestEngagedSignal проверяет сигнал входа в бой: он доставляется циклу
// и не блокирует повторную установку режима.
func TestEngagedSignal(t *testing.T) {
	s := testSession(nil)
	s.SetMode(ModeEngaged)
	s.SetMode(ModeEngaged) // второй сигнал не должен блокировать

	select {
	case <-s.EngagedSignal():
	default:
		t.Fatalf("сигнал входа в бой не доставлен")
	}
}
