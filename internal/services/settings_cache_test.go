package services

import (
	"context"
	"testing"

	"tourapp/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSettingsCacheFallsBackToDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"setting_key", "setting_value"}).
		AddRow("trip_title", "Tour Jawa-Bali 2026").
		AddRow("contact_phone", "0812000111")
	mock.ExpectQuery("FROM app_settings").WillReturnRows(rows)

	// tanpa Redis semua baca langsung ke DB
	cache := SettingsCache{Repo: repositories.SettingsRepository{DB: db}}
	values, err := cache.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all error: %v", err)
	}
	if values["trip_title"] != "Tour Jawa-Bali 2026" {
		t.Fatalf("trip_title = %q", values["trip_title"])
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 settings, got %d", len(values))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSettingsCacheUpsertWritesDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO app_settings").
		WithArgs("trip_title", "Tour Sumatera").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	cache := SettingsCache{Repo: repositories.SettingsRepository{DB: db}}
	err = cache.UpsertMany(context.Background(), map[string]string{"trip_title": "Tour Sumatera"})
	if err != nil {
		t.Fatalf("upsert error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
