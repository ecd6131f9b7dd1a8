package repositories

import (
	"testing"
	"time"

	"tourapp/internal/domain"
	"tourapp/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPollForUserFiltersAudience(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	vid := int64(3)

	// dengan kendaraan: klausa all + vehicle + users targeted
	rows := sqlmock.NewRows([]string{"id", "title", "body", "audience", "vehicle_id", "created_by", "created_at", "expires_at"}).
		AddRow(int64(1), "Kumpul pagi", "Jam 7 di lobi", "all", nil, int64(9), now, nil).
		AddRow(int64(2), "Khusus bus 3", "Ganti titik jemput", "vehicle", vid, int64(9), now, nil)
	mock.ExpectQuery("FROM announcements a").
		WithArgs(int64(5), vid, int64(5)).
		WillReturnRows(rows)

	repo := AnnouncementRepository{DB: db}
	out, err := repo.PollForUser(5, &vid)
	if err != nil {
		t.Fatalf("poll error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 announcements, got %d", len(out))
	}
	if out[1].VehicleID == nil || *out[1].VehicleID != vid {
		t.Fatalf("vehicle announcement salah: %+v", out[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPollForUserWithoutVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// tanpa kendaraan: klausa vehicle tidak ikut, argumen hanya userID dua kali
	mock.ExpectQuery("FROM announcements a").
		WithArgs(int64(5), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "audience", "vehicle_id", "created_by", "created_at", "expires_at"}))

	repo := AnnouncementRepository{DB: db}
	out, err := repo.PollForUser(5, nil)
	if err != nil {
		t.Fatalf("poll error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %d", len(out))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM announcements").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("INSERT INTO announcement_reads").
		WithArgs(int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM announcements").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("INSERT INTO announcement_reads").
		WithArgs(int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(1, 0))

	repo := AnnouncementRepository{DB: db}
	if err := repo.MarkRead(1, 5); err != nil {
		t.Fatalf("first mark read error: %v", err)
	}
	if err := repo.MarkRead(1, 5); err != nil {
		t.Fatalf("second mark read error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkReadUnknownAnnouncement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM announcements").WithArgs(int64(999999)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := AnnouncementRepository{DB: db}
	err = repo.MarkRead(999999, 5)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found error, got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateAnnouncementWithRecipients(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO announcements").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO announcement_recipients").
		WithArgs(int64(10), int64(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO announcement_recipients").
		WithArgs(int64(10), int64(6)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	repo := AnnouncementRepository{DB: db}
	id, err := repo.Create(models.Announcement{
		Title:      "Pembagian kamar",
		Body:       "Cek lampiran",
		Audience:   domain.AudienceUsers,
		Recipients: []int64{4, 6},
		CreatedBy:  9,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if id != 10 {
		t.Fatalf("expected id 10, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPurgeExpiredDeletesChildrenFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE rc FROM announcement_recipients").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE rd FROM announcement_reads").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("DELETE FROM announcements").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	repo := AnnouncementRepository{DB: db}
	n, err := repo.PurgeExpired(time.Now())
	if err != nil {
		t.Fatalf("purge error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 purged, got %d", n)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
