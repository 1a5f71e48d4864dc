package storage

import (
	"fmt"
	"log"

	"safari_go/models"
)

// IncrementStat увеличивает на единицу и накопительный, и суточный счётчик
// одним запросом, чтобы они не могли разойтись.
func (db *DB) IncrementStat(accountID int, kind models.StatKind) error {
	switch kind {
	case models.StatMatched, models.StatCaught, models.StatFled, models.StatShiny:
	default:
		return fmt.Errorf("неизвестный счётчик: %s", kind)
	}

	// Имена колонок собираются только из проверенного выше значения.
	query := fmt.Sprintf(
		`UPDATE accounts SET total_%s = total_%s + 1, daily_%s = daily_%s + 1 WHERE id = $1`,
		kind, kind, kind, kind)
	_, err := db.Conn.Exec(query, accountID)
	return err
}

// ResetDailyStats обнуляет суточные счётчики всего парка.
// Накопительные значения не трогаются.
func (db *DB) ResetDailyStats() error {
	log.Printf("[STATS] суточный сброс счётчиков")
	_, err := db.Conn.Exec(
		`UPDATE accounts SET daily_matched = 0, daily_caught = 0, daily_fled = 0, daily_shiny = 0`)
	return err
}

// GetGlobalStats возвращает сводку по всему парку для владельца сервиса.
func (db *DB) GetGlobalStats() (users int, caught int, err error) {
	err = db.Conn.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(total_caught), 0) FROM accounts`).Scan(&users, &caught)
	return users, caught, err
}
