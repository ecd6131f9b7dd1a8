package repositories

import (
	"testing"

	"tourapp/internal/domain"
	"tourapp/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func boolPtr(b bool) *bool { return &b }

func TestUpsertCheckinSessionMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM checkin_sessions").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := CheckinRepository{DB: db}
	err = repo.UpsertCheckin(models.CheckinPayload{SessionID: 99, UserID: 1, Present: boolPtr(true)}, 7)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsertCheckinVehicleFallback(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM checkin_sessions").WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	// payload tanpa vehicle_id: ambil dari penempatan user
	mock.ExpectQuery("SELECT vehicle_id FROM users").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"vehicle_id"}).AddRow(int64(3)))
	mock.ExpectExec("INSERT INTO checkins").
		WithArgs(int64(2), int64(5), int64(3), 1, int64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := CheckinRepository{DB: db}
	err = repo.UpsertCheckin(models.CheckinPayload{SessionID: 2, UserID: 5, Present: boolPtr(true)}, 7)
	if err != nil {
		t.Fatalf("upsert error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecapCountsAbsentFromAssignment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "vehicle_code", "total", "present"}).
		AddRow(int64(1), "BUS-1", 40, 38).
		AddRow(int64(2), "BUS-2", 12, 0)
	mock.ExpectQuery("FROM vehicles v").WithArgs(int64(9)).WillReturnRows(rows)

	repo := CheckinRepository{DB: db}
	recap, err := repo.Recap(9)
	if err != nil {
		t.Fatalf("recap error: %v", err)
	}
	if len(recap) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(recap))
	}
	if recap[0].Absent != 2 {
		t.Fatalf("BUS-1 absent = %d, want 2", recap[0].Absent)
	}
	if recap[1].Absent != 12 || recap[1].Present != 0 {
		t.Fatalf("BUS-2 recap salah: %+v", recap[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
