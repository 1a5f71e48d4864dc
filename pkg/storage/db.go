package storage

import (
	"database/sql"

	_ "github.com/lib/pq"
)

type DB struct {
	Conn *sql.DB
}

func NewDB(conn *sql.DB) *DB {
	return &DB{Conn: conn}
}

// InitSchema создаёт таблицы при первом запуске.
// Используем IF NOT EXISTS, чтобы повторный старт ничего не ломал.
func (db *DB) InitSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS proxies (
			id SERIAL PRIMARY KEY,
			ip TEXT NOT NULL,
			port INT NOT NULL,
			login TEXT NOT NULL DEFAULT '',
			password TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id SERIAL PRIMARY KEY,
			telegram_id BIGINT NOT NULL DEFAULT 0,
			phone TEXT NOT NULL UNIQUE,
			api_id INT NOT NULL,
			api_hash TEXT NOT NULL,
			is_authorized BOOLEAN NOT NULL DEFAULT FALSE,
			phone_code_hash TEXT NOT NULL DEFAULT '',
			watchlist TEXT NOT NULL DEFAULT '[]',
			ball TEXT NOT NULL DEFAULT 'Safari Ball',
			hunt_interval DOUBLE PRECISION NOT NULL DEFAULT 2.5,
			schedule_time TEXT,
			schedule_active BOOLEAN NOT NULL DEFAULT FALSE,
			notify_group BOOLEAN NOT NULL DEFAULT FALSE,
			group_id BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			proxy_id INT REFERENCES proxies(id),
			total_matched INT NOT NULL DEFAULT 0,
			total_caught INT NOT NULL DEFAULT 0,
			total_fled INT NOT NULL DEFAULT 0,
			total_shiny INT NOT NULL DEFAULT 0,
			daily_matched INT NOT NULL DEFAULT 0,
			daily_caught INT NOT NULL DEFAULT 0,
			daily_fled INT NOT NULL DEFAULT 0,
			daily_shiny INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS account_session (
			account INT PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
			data_json TEXT NOT NULL,
			date_time TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, q := range queries {
		if _, err := db.Conn.Exec(q); err != nil {
			return err
		}
	}
	return nil
}
