package repositories

import (
	"database/sql"
	"strings"

	intconfig "tourapp/internal/config"
)

type SettingsRepository struct {
	DB *sql.DB
}

func (r SettingsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetAll mengembalikan seluruh app settings sebagai map key->value.
func (r SettingsRepository) GetAll() (map[string]string, error) {
	db := r.db()

	rows, err := db.Query(`SELECT setting_key, setting_value FROM app_settings ORDER BY setting_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return out, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

// UpsertMany menulis beberapa setting sekaligus dalam satu transaksi.
func (r SettingsRepository) UpsertMany(values map[string]string) error {
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for k, v := range values {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO app_settings (setting_key, setting_value, updated_at)
			VALUES (?, ?, NOW())
			ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value), updated_at = NOW()
		`, k, v); err != nil {
			return err
		}
	}

	return tx.Commit()
}
