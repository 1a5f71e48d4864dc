package models

import "time"

// StatKind — вид счётчика охоты. Используется хранилищем и движком,
// чтобы не передавать названия колонок строками из разных мест.
type StatKind string

const (
	StatMatched StatKind = "matched"
	StatCaught  StatKind = "caught"
	StatFled    StatKind = "fled"
	StatShiny   StatKind = "shiny"
)

// Stats хранит счётчики аккаунта: за всё время и с последнего суточного сброса.
type Stats struct {
	TotalMatched int `json:"total_matched"`
	TotalCaught  int `json:"total_caught"`
	TotalFled    int `json:"total_fled"`
	TotalShiny   int `json:"total_shiny"`
	DailyMatched int `json:"daily_matched"`
	DailyCaught  int `json:"daily_caught"`
	DailyFled    int `json:"daily_fled"`
	DailyShiny   int `json:"daily_shiny"`
}

// Account описывает один зарегистрированный аккаунт охотника.
// TelegramID — идентификатор владельца, туда же уходят уведомления.
type Account struct {
	ID             int       `json:"id"`
	TelegramID     int64     `json:"telegram_id"`
	Phone          string    `json:"phone"`
	ApiID          int       `json:"api_id"`
	ApiHash        string    `json:"api_hash"`
	IsAuthorized   bool      `json:"is_authorized"`
	PhoneCodeHash  string    `json:"phone_code_hash"`
	Watchlist      []string  `json:"watchlist"`
	Ball           string    `json:"ball"`
	Interval       float64   `json:"interval"`
	ScheduleTime   *string   `json:"schedule_time"`
	ScheduleActive bool      `json:"schedule_active"`
	NotifyGroup    bool      `json:"notify_group"`
	GroupID        int64     `json:"group_id"`
	CreatedAt      time.Time `json:"created_at"`
	Stats          Stats     `json:"stats"`
	ProxyID        *int      `json:"proxy_id"`
	Proxy          *Proxy    `json:"proxy"`
}

// AccountRecord — плоская запись аккаунта для резервного копирования.
// Содержит всё необходимое для восстановления парка, включая сессию Telegram.
type AccountRecord struct {
	Account
	SessionData string `json:"session_data"`
}
