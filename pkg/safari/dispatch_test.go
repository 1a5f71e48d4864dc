package safari

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"safari_go/models"
)

// fakeMessenger подменяет игровой чат в тестах машины состояний.
type fakeMessenger struct {
	mu        sync.Mutex
	sent      []string
	clicked   []int
	recent    []Inbound
	message   *Inbound
	getErr    error
	clickErr  error
	mediaPath string
	offline   bool
}

func (f *fakeMessenger) SendMessage(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeMessenger) RecentMessages(ctx context.Context, limit int) ([]Inbound, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recent, nil
}

func (f *fakeMessenger) GetMessage(ctx context.Context, msgID int) (*Inbound, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message, f.getErr
}

func (f *fakeMessenger) Click(ctx context.Context, msgID, index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clickErr != nil {
		f.clicked = append(f.clicked, -1)
		return f.clickErr
	}
	f.clicked = append(f.clicked, index)
	return nil
}

func (f *fakeMessenger) DownloadMedia(ctx context.Context, msgID int) (string, error) {
	if f.mediaPath == "" {
		return "", errors.New("вложения нет")
	}
	return f.mediaPath, nil
}

func (f *fakeMessenger) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.offline
}

func (f *fakeMessenger) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeMessenger) clickedIndices() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.clicked))
	copy(out, f.clicked)
	return out
}

// fakeNotifier запоминает отправленные отчёты.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	groups   []int64
}

func (f *fakeNotifier) Notify(owner, group int64, text, attachmentPath string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, text)
	f.groups = append(f.groups, group)
}

func (f *fakeNotifier) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		return ""
	}
	return f.messages[len(f.messages)-1]
}

// fakeStats запоминает увеличенные счётчики.
type fakeStats struct {
	mu    sync.Mutex
	kinds []models.StatKind
}

func (f *fakeStats) IncrementStat(accountID int, kind models.StatKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = append(f.kinds, kind)
	return nil
}

func (f *fakeStats) has(kind models.StatKind) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range f.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func testDeps() (Deps, *fakeMessenger, *fakeNotifier, *fakeStats) {
	m := &fakeMessenger{}
	n := &fakeNotifier{}
	st := &fakeStats{}
	return Deps{Messenger: m, Notifier: n, Stats: st}, m, n, st
}

func testSession(watchlist []string) *Session {
	return NewSession(models.Account{
		ID:         1,
		TelegramID: 100,
		Watchlist:  watchlist,
		Ball:       DefaultBall,
		Interval:   MinInterval,
	})
}

// TestHandleEventBlocked проверяет, что закрытие сессии сервером
// останавливает охоту и уведомляет владельца первой строкой причины.
func TestHandleEventBlocked(t *testing.T) {
	deps, _, n, _ := testDeps()
	s := testSession(nil)
	s.StartSearching()

	HandleEvent(context.Background(), deps, s, models.Event{
		Kind:    models.EventSessionBlocked,
		Summary: "You are out of Safari Balls!",
	})

	if s.Hunting() {
		t.Errorf("охота должна быть остановлена")
	}
	if s.Mode() != ModeStopped {
		t.Errorf("ожидался режим STOPPED, получен %s", s.Mode())
	}
	want := "[!] Session Ended:\nYou are out of Safari Balls!"
	if n.last() != want {
		t.Errorf("ожидалось уведомление %q, получено %q", want, n.last())
	}
}

// TestHandleEventCatch проверяет фиксацию поимки: счётчик, идемпотентность
// по сообщению и возврат машины к поиску.
func TestHandleEventCatch(t *testing.T) {
	deps, _, n, st := testDeps()
	s := testSession(nil)
	s.StartSearching()
	s.SetMode(ModeEngaged)

	HandleEvent(context.Background(), deps, s, models.Event{
		Kind:    models.EventCatchSuccess,
		MsgID:   42,
		Summary: "You caught a wild Pikachu (Lv 12)!",
	})

	if !st.has(models.StatCaught) {
		t.Errorf("счётчик поимок не увеличен")
	}
	if s.StatsSnapshot().DailyCaught != 1 {
		t.Errorf("зеркало суточного счётчика не обновлено")
	}
	if s.Mode() != ModeSearching {
		t.Errorf("после поимки ожидался режим SEARCHING, получен %s", s.Mode())
	}
	if !s.IsResolved(42) {
		t.Errorf("сообщение поимки должно быть помечено завершённым")
	}
	if n.last() != "You caught a wild Pikachu (Lv 12)!" {
		t.Errorf("владелец не получил сводку поимки: %q", n.last())
	}
}

// TestHandleEventCatchRemovesAttachment проверяет, что скачанное вложение
// удаляется после отправки отчёта.
func TestHandleEventCatchRemovesAttachment(t *testing.T) {
	deps, m, _, _ := testDeps()
	tmp, err := os.CreateTemp("", "catch_*.jpg")
	if err != nil {
		t.Fatalf("не удалось создать временный файл: %v", err)
	}
	tmp.Close()
	m.mediaPath = tmp.Name()

	s := testSession(nil)
	s.StartSearching()

	HandleEvent(context.Background(), deps, s, models.Event{
		Kind:     models.EventCatchSuccess,
		MsgID:    7,
		Summary:  "You caught a wild Abra (Lv 9)!",
		HasMedia: true,
	})

	if _, err := os.Stat(tmp.Name()); !os.IsNotExist(err) {
		os.Remove(tmp.Name())
		t.Errorf("временный файл вложения должен быть удалён")
	}
}

// TestHandleEventSpawnWatchlist проверяет вступление в бой за существо из списка.
func TestHandleEventSpawnWatchlist(t *testing.T) {
	deps, m, _, st := testDeps()
	m.message = &Inbound{ID: 10, Buttons: [][]string{{"Engage"}, {"Run"}}}
	s := testSession([]string{"Mewtwo"})
	s.StartSearching()

	HandleEvent(context.Background(), deps, s, models.Event{
		Kind: models.EventSpawn, MsgID: 10, Name: "Mewtwo",
	})

	if s.Mode() != ModeEngaged {
		t.Fatalf("ожидался режим ENGAGED, получен %s", s.Mode())
	}
	if !st.has(models.StatMatched) {
		t.Errorf("счётчик совпадений не увеличен")
	}
	clicks := m.clickedIndices()
	if len(clicks) != 1 || clicks[0] != 0 {
		t.Errorf("ожидалось одно нажатие кнопки 0, получено %v", clicks)
	}
}

// TestHandleEventSpawnIgnored проверяет, что постороннее существо не меняет машину.
func TestHandleEventSpawnIgnored(t *testing.T) {
	deps, m, _, st := testDeps()
	s := testSession([]string{"Mewtwo"})
	s.StartSearching()

	HandleEvent(context.Background(), deps, s, models.Event{
		Kind: models.EventSpawn, MsgID: 11, Name: "Rattata",
	})

	if s.Mode() != ModeSearching {
		t.Errorf("режим не должен меняться, получен %s", s.Mode())
	}
	if st.has(models.StatMatched) {
		t.Errorf("постороннее существо не должно увеличивать счётчик")
	}
	if len(m.clickedIndices()) != 0 {
		t.Errorf("кнопки не должны нажиматься")
	}
}

// TestHandleEventSpawnShiny проверяет, что шайни ловится даже вне списка
// и владелец получает отдельное уведомление.
func TestHandleEventSpawnShiny(t *testing.T) {
	deps, m, n, st := testDeps()
	m.message = &Inbound{ID: 12, Buttons: [][]string{{"Engage"}}}
	s := testSession([]string{"Mewtwo"})
	s.StartSearching()

	HandleEvent(context.Background(), deps, s, models.Event{
		Kind: models.EventSpawn, MsgID: 12, Name: "Rattata", Shiny: true,
	})

	if s.Mode() != ModeEngaged {
		t.Fatalf("шайни должен переводить машину в ENGAGED")
	}
	if !st.has(models.StatShiny) {
		t.Errorf("счётчик шайни не увеличен")
	}
	found := false
	n.mu.Lock()
	for _, msg := range n.messages {
		if msg == "★ SHINY DETECTED: Rattata" {
			found = true
		}
	}
	n.mu.Unlock()
	if !found {
		t.Errorf("владелец не получил уведомление о шайни")
	}
}

// TestHandleEventResolvedReplay проверяет, что правки уже завершённого боя
// не запускают действия заново.
func TestHandleEventResolvedReplay(t *testing.T) {
	deps, m, _, _ := testDeps()
	m.message = &Inbound{ID: 42, Buttons: [][]string{{"Throw Ball x3"}}}
	s := testSession([]string{"Mewtwo"})
	s.StartSearching()
	s.MarkResolved(42)

	HandleEvent(context.Background(), deps, s, models.Event{
		Kind: models.EventBattlePrompt, MsgID: 42,
	})
	HandleEvent(context.Background(), deps, s, models.Event{
		Kind: models.EventSpawn, MsgID: 42, Name: "Mewtwo",
	})

	if len(m.clickedIndices()) != 0 {
		t.Errorf("завершённый бой не должен порождать нажатия, получено %v", m.clickedIndices())
	}
}

// TestHandleEventIgnoredWhenStopped проверяет, что при выключенной охоте
// игровые события не обрабатываются.
func TestHandleEventIgnoredWhenStopped(t *testing.T) {
	deps, m, _, st := testDeps()
	m.message = &Inbound{ID: 5, Buttons: [][]string{{"Throw Ball"}}}
	s := testSession([]string{"Mewtwo"})

	HandleEvent(context.Background(), deps, s, models.Event{
		Kind: models.EventSpawn, MsgID: 5, Name: "Mewtwo",
	})

	if len(m.clickedIndices()) != 0 || st.has(models.StatMatched) {
		t.Errorf("выключенная охота не должна реагировать на события")
	}
}

// TestHandleEventZoneEntered проверяет запуск поиска после входа в зону.
func TestHandleEventZoneEntered(t *testing.T) {
	deps, m, n, _ := testDeps()
	s := testSession(nil)
	s.Start()

	HandleEvent(context.Background(), deps, s, models.Event{Kind: models.EventZoneEntered})
	defer s.Stop()

	if s.Mode() != ModeSearching {
		t.Fatalf("ожидался режим SEARCHING, получен %s", s.Mode())
	}
	if n.last() != "[+] Safari Session Started!" {
		t.Errorf("владелец не получил отчёт о старте: %q", n.last())
	}

	// Цикл охоты должен подняться и отправить первую команду.
	deadline := time.After(3 * time.Second)
	for m.sentCount() == 0 {
		select {
		case <-deadline:
			t.Fatalf("цикл охоты не отправил ни одной команды")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// TestHandleEventZoneAlreadyInOutsideInit проверяет, что сообщение
// «уже в зоне» вне фазы входа игнорируется.
func TestHandleEventZoneAlreadyInOutsideInit(t *testing.T) {
	deps, _, _, _ := testDeps()
	s := testSession(nil)

	HandleEvent(context.Background(), deps, s, models.Event{Kind: models.EventZoneAlreadyIn})

	if s.Hunting() {
		t.Errorf("остановленный аккаунт не должен включаться от чужого события")
	}
}
