package safari

import (
	"strings"
	"sync"

	"safari_go/models"
)

// Mode — состояние машины охоты одного аккаунта.
type Mode int

const (
	ModeStopped Mode = iota
	ModeSafariInit
	ModeSearching
	ModeEngaged
)

func (m Mode) String() string {
	switch m {
	case ModeSafariInit:
		return "SAFARI_INIT"
	case ModeSearching:
		return "SEARCHING"
	case ModeEngaged:
		return "ENGAGED"
	default:
		return "STOPPED"
	}
}

// Session — изменяемое состояние охоты одного аккаунта.
// Все поля защищены одним мьютексом: к сессии обращаются цикл охоты,
// обработчик входящих событий и планировщик парка.
type Session struct {
	AccountID int
	OwnerID   int64

	mu          sync.Mutex
	mode        Mode
	hunting     bool
	interval    float64
	watchlist   []string
	ball        string
	notifyGroup bool
	groupID     int64
	schedule    *string
	scheduleOn  bool
	stats       models.Stats

	// resolvedMsg — сообщение, бой в котором уже завершился поимкой.
	// Повторная доставка его правок не должна заново запускать действия.
	resolvedMsg int

	loopRunning bool
	// engaged сигнализирует циклу охоты о переходе в ENGAGED,
	// чтобы прервать ожидание интервала досрочно.
	engaged chan struct{}
}

// NewSession создаёт состояние из записи аккаунта.
func NewSession(acc models.Account) *Session {
	interval := acc.Interval
	if interval < MinInterval {
		interval = DefaultInterval
	}
	return &Session{
		AccountID:   acc.ID,
		OwnerID:     acc.TelegramID,
		interval:    interval,
		watchlist:   acc.Watchlist,
		ball:        acc.Ball,
		notifyGroup: acc.NotifyGroup,
		groupID:     acc.GroupID,
		schedule:    acc.ScheduleTime,
		scheduleOn:  acc.ScheduleActive,
		stats:       acc.Stats,
		engaged:     make(chan struct{}, 1),
	}
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode переводит машину в новое состояние. Повторная установка того же
// состояния безвредна: переходы обязаны быть идемпотентными.
func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	if m == ModeEngaged {
		// Неблокирующий сигнал: если цикл ещё не забрал прошлый, нового не нужно.
		select {
		case s.engaged <- struct{}{}:
		default:
		}
	}
}

// EngagedSignal возвращает канал, по которому цикл охоты узнаёт о входе в бой.
func (s *Session) EngagedSignal() <-chan struct{} {
	return s.engaged
}

func (s *Session) Hunting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hunting
}

// Start включает охоту и переводит машину к входу в зону.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hunting = true
	s.mode = ModeSafariInit
}

// StartSearching включает охоту сразу в режиме поиска (зона уже открыта).
func (s *Session) StartSearching() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hunting = true
	s.mode = ModeSearching
}

// Stop выключает охоту. Цикл охоты заметит флаг на ближайшей проверке.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hunting = false
	s.mode = ModeStopped
}

func (s *Session) Interval() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *Session) SetInterval(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = v
}

func (s *Session) Ball() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ball
}

func (s *Session) SetBall(ball string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ball = ball
}

func (s *Session) SetWatchlist(list []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchlist = list
}

// MatchesWatchlist проверяет имя существа по списку: подстрока без регистра.
func (s *Session) MatchesWatchlist(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	lowered := strings.ToLower(name)
	for _, want := range s.watchlist {
		if strings.Contains(lowered, strings.ToLower(want)) {
			return true
		}
	}
	return false
}

// NotifyTarget возвращает адресатов уведомления: владельца и, если включено, группу.
func (s *Session) NotifyTarget() (owner, group int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notifyGroup && s.groupID != 0 {
		return s.OwnerID, s.groupID
	}
	return s.OwnerID, 0
}

func (s *Session) SetNotification(enabled bool, groupID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyGroup = enabled
	s.groupID = groupID
}

// Schedule возвращает время автозапуска и признак его активности.
func (s *Session) Schedule() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schedule == nil {
		return "", false
	}
	return *s.schedule, s.scheduleOn
}

func (s *Session) SetSchedule(timeStr *string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = timeStr
	s.scheduleOn = active
}

// BumpStat обновляет зеркало счётчиков. Долговечность обеспечивает StatStore,
// зеркало нужно для мгновенных ответов оператору.
func (s *Session) BumpStat(kind models.StatKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case models.StatMatched:
		s.stats.TotalMatched++
		s.stats.DailyMatched++
	case models.StatCaught:
		s.stats.TotalCaught++
		s.stats.DailyCaught++
	case models.StatFled:
		s.stats.TotalFled++
		s.stats.DailyFled++
	case models.StatShiny:
		s.stats.TotalShiny++
		s.stats.DailyShiny++
	}
}

// ResetDailyStats обнуляет суточную часть зеркала.
func (s *Session) ResetDailyStats() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.DailyMatched = 0
	s.stats.DailyCaught = 0
	s.stats.DailyFled = 0
	s.stats.DailyShiny = 0
}

func (s *Session) StatsSnapshot() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// MarkResolved запоминает сообщение, бой в котором завершён.
func (s *Session) MarkResolved(msgID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolvedMsg = msgID
}

// IsResolved сообщает, завершён ли уже бой в этом сообщении.
func (s *Session) IsResolved(msgID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return msgID != 0 && msgID == s.resolvedMsg
}

// beginLoop отмечает запуск цикла охоты; false — цикл уже работает.
func (s *Session) beginLoop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loopRunning {
		return false
	}
	s.loopRunning = true
	return true
}

func (s *Session) endLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loopRunning = false
}
