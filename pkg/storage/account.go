package storage

import (
	"database/sql"
	"encoding/json"

	"safari_go/models"
)

// accountColumns перечисляет колонки в порядке, который ожидает scanAccount.
const accountColumns = `id, telegram_id, phone, api_id, api_hash, is_authorized, phone_code_hash,
	watchlist, ball, hunt_interval, schedule_time, schedule_active, notify_group, group_id,
	created_at, proxy_id,
	total_matched, total_caught, total_fled, total_shiny,
	daily_matched, daily_caught, daily_fled, daily_shiny`

// scanAccount читает одну строку таблицы accounts.
func scanAccount(row interface{ Scan(...any) error }) (*models.Account, error) {
	var acc models.Account
	var watchlist string
	err := row.Scan(
		&acc.ID, &acc.TelegramID, &acc.Phone, &acc.ApiID, &acc.ApiHash, &acc.IsAuthorized, &acc.PhoneCodeHash,
		&watchlist, &acc.Ball, &acc.Interval, &acc.ScheduleTime, &acc.ScheduleActive, &acc.NotifyGroup, &acc.GroupID,
		&acc.CreatedAt, &acc.ProxyID,
		&acc.Stats.TotalMatched, &acc.Stats.TotalCaught, &acc.Stats.TotalFled, &acc.Stats.TotalShiny,
		&acc.Stats.DailyMatched, &acc.Stats.DailyCaught, &acc.Stats.DailyFled, &acc.Stats.DailyShiny,
	)
	if err != nil {
		return nil, err
	}
	// Повреждённый список в базе не должен ронять загрузку аккаунта.
	if err := json.Unmarshal([]byte(watchlist), &acc.Watchlist); err != nil {
		acc.Watchlist = nil
	}
	return &acc, nil
}

// CreateAccount регистрирует новый аккаунт с настройками по умолчанию.
func (db *DB) CreateAccount(account models.Account) (*models.Account, error) {
	list, err := json.Marshal(account.Watchlist)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO accounts (telegram_id, phone, api_id, api_hash, watchlist, ball, hunt_interval, proxy_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err = db.Conn.QueryRow(query,
		account.TelegramID, account.Phone, account.ApiID, account.ApiHash,
		string(list), account.Ball, account.Interval, account.ProxyID,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (db *DB) GetAccountByID(id int) (*models.Account, error) {
	acc, err := scanAccount(db.Conn.QueryRow(
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := db.attachProxy(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// GetAuthorizedAccounts возвращает аккаунты, готовые к запуску при старте процесса.
func (db *DB) GetAuthorizedAccounts() ([]models.Account, error) {
	rows, err := db.Conn.Query(
		`SELECT ` + accountColumns + ` FROM accounts WHERE is_authorized = TRUE ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		if err := db.attachProxy(acc); err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	return accounts, rows.Err()
}

// attachProxy подгружает прокси аккаунта, если он назначен.
func (db *DB) attachProxy(acc *models.Account) error {
	if acc.ProxyID == nil {
		return nil
	}
	proxy, err := db.GetProxyByID(*acc.ProxyID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	acc.Proxy = proxy
	return nil
}

// MarkAuthorized фиксирует успешный вход и telegram_id владельца сессии.
func (db *DB) MarkAuthorized(id int, telegramID int64) error {
	_, err := db.Conn.Exec(
		`UPDATE accounts SET is_authorized = TRUE, telegram_id = $1 WHERE id = $2`,
		telegramID, id)
	return err
}

func (db *DB) UpdatePhoneCodeHash(id int, hash string) error {
	_, err := db.Conn.Exec(
		`UPDATE accounts SET phone_code_hash = $1 WHERE id = $2`, hash, id)
	return err
}

func (db *DB) UpdateWatchlist(id int, list []string) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	_, err = db.Conn.Exec(
		`UPDATE accounts SET watchlist = $1 WHERE id = $2`, string(data), id)
	return err
}

func (db *DB) UpdateBall(id int, ball string) error {
	_, err := db.Conn.Exec(
		`UPDATE accounts SET ball = $1 WHERE id = $2`, ball, id)
	return err
}

func (db *DB) UpdateInterval(id int, interval float64) error {
	_, err := db.Conn.Exec(
		`UPDATE accounts SET hunt_interval = $1 WHERE id = $2`, interval, id)
	return err
}

// UpdateSchedule сохраняет время автозапуска. timeStr == nil выключает расписание.
func (db *DB) UpdateSchedule(id int, timeStr *string, active bool) error {
	_, err := db.Conn.Exec(
		`UPDATE accounts SET schedule_time = $1, schedule_active = $2 WHERE id = $3`,
		timeStr, active, id)
	return err
}

func (db *DB) UpdateNotification(id int, enabled bool, groupID int64) error {
	_, err := db.Conn.Exec(
		`UPDATE accounts SET notify_group = $1, group_id = $2 WHERE id = $3`,
		enabled, groupID, id)
	return err
}
