package models

// EventKind — семантическая метка входящего сообщения игрового бота.
type EventKind int

const (
	EventUnrecognized EventKind = iota
	EventZoneEntered
	EventZoneAlreadyIn
	EventSessionBlocked
	EventCatchSuccess
	EventBattlePrompt
	EventSpawn
	EventWaitNotice
)

// String возвращает метку события для журнала.
func (k EventKind) String() string {
	switch k {
	case EventZoneEntered:
		return "ZONE_ENTERED"
	case EventZoneAlreadyIn:
		return "ZONE_ALREADY_IN"
	case EventSessionBlocked:
		return "SESSION_BLOCKED"
	case EventCatchSuccess:
		return "CATCH_SUCCESS"
	case EventBattlePrompt:
		return "BATTLE_PROMPT"
	case EventSpawn:
		return "SPAWN"
	case EventWaitNotice:
		return "WAIT_NOTICE"
	default:
		return "UNRECOGNIZED"
	}
}

// Event — результат классификации одного сообщения.
// Живёт только до обработки диспетчером, нигде не сохраняется.
type Event struct {
	Kind  EventKind
	MsgID int
	// Name и Shiny заполняются для SPAWN.
	Name  string
	Shiny bool
	// Summary — первая строка текста (CATCH_SUCCESS, SESSION_BLOCKED).
	Summary  string
	HasMedia bool
	// WaitSeconds — явная длительность из WAIT_NOTICE; 0 означает,
	// что сервер назвал только ключевые слова без числа.
	WaitSeconds int
}
