package storage

import (
	"database/sql"
	"encoding/json"

	"safari_go/models"
)

// ExportRecords выгружает все аккаунты вместе с сессиями Telegram.
// Результат достаточен для полного восстановления парка на чистой базе.
func (db *DB) ExportRecords() ([]models.AccountRecord, error) {
	rows, err := db.Conn.Query(
		`SELECT ` + accountColumns + ` FROM accounts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AccountRecord
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, models.AccountRecord{Account: *acc})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		var data string
		err := db.Conn.QueryRow(
			`SELECT data_json FROM account_session WHERE account = $1`, records[i].ID).Scan(&data)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		records[i].SessionData = data
	}
	return records, nil
}

// ImportRecords восстанавливает аккаунты из резервной копии.
// Существующие записи обновляются по номеру телефона.
func (db *DB) ImportRecords(records []models.AccountRecord) (int, error) {
	count := 0
	for _, r := range records {
		list, err := json.Marshal(r.Watchlist)
		if err != nil {
			return count, err
		}
		var id int
		err = db.Conn.QueryRow(`
			INSERT INTO accounts (telegram_id, phone, api_id, api_hash, is_authorized, watchlist, ball,
				hunt_interval, schedule_time, schedule_active, notify_group, group_id, created_at,
				total_matched, total_caught, total_fled, total_shiny,
				daily_matched, daily_caught, daily_fled, daily_shiny)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
				$14, $15, $16, $17, $18, $19, $20, $21)
			ON CONFLICT (phone) DO UPDATE SET
				telegram_id = EXCLUDED.telegram_id,
				api_id = EXCLUDED.api_id,
				api_hash = EXCLUDED.api_hash,
				is_authorized = EXCLUDED.is_authorized,
				watchlist = EXCLUDED.watchlist,
				ball = EXCLUDED.ball,
				hunt_interval = EXCLUDED.hunt_interval,
				schedule_time = EXCLUDED.schedule_time,
				schedule_active = EXCLUDED.schedule_active,
				notify_group = EXCLUDED.notify_group,
				group_id = EXCLUDED.group_id,
				total_matched = EXCLUDED.total_matched,
				total_caught = EXCLUDED.total_caught,
				total_fled = EXCLUDED.total_fled,
				total_shiny = EXCLUDED.total_shiny,
				daily_matched = EXCLUDED.daily_matched,
				daily_caught = EXCLUDED.daily_caught,
				daily_fled = EXCLUDED.daily_fled,
				daily_shiny = EXCLUDED.daily_shiny
			RETURNING id`,
			r.TelegramID, r.Phone, r.ApiID, r.ApiHash, r.IsAuthorized, string(list), r.Ball,
			r.Interval, r.ScheduleTime, r.ScheduleActive, r.NotifyGroup, r.GroupID, r.CreatedAt,
			r.Stats.TotalMatched, r.Stats.TotalCaught, r.Stats.TotalFled, r.Stats.TotalShiny,
			r.Stats.DailyMatched, r.Stats.DailyCaught, r.Stats.DailyFled, r.Stats.DailyShiny,
		).Scan(&id)
		if err != nil {
			return count, err
		}

		if r.SessionData != "" {
			_, err = db.Conn.Exec(`
				INSERT INTO account_session (account, data_json) VALUES ($1, $2)
				ON CONFLICT (account) DO UPDATE SET data_json = EXCLUDED.data_json, date_time = NOW()`,
				id, r.SessionData)
			if err != nil {
				return count, err
			}
		}
		count++
	}
	return count, nil
}
