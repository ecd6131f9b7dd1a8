package services

import (
	"bytes"
	"testing"

	"tourapp/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGenerateRoomingList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM hotels").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "city", "checkin", "checkout", "notes"}).
			AddRow(int64(1), "Hotel Melati", "Jl. Malioboro 1", "Yogyakarta", "2026-09-01", "2026-09-03", ""))
	mock.ExpectQuery("FROM rooms rm").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"room_number", "capacity", "name", "allot_date"}).
			AddRow("101", 2, "Budi", "2026-09-01").
			AddRow("101", 2, "Siti", "2026-09-01"))

	svc := DocsService{HotelRepo: repositories.HotelRepository{DB: db}}
	pdf, filename, err := svc.GenerateRoomingList(1)
	if err != nil {
		t.Fatalf("GenerateRoomingList returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("GenerateRoomingList returned empty data")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("output bukan PDF")
	}
	if filename != "ROOMING_Hotel_Melati.pdf" {
		t.Fatalf("filename = %q", filename)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGenerateVehicleManifestEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	// probe kolom lokasi: belum ada
	mock.ExpectQuery("information_schema\\.columns").WithArgs("vehicles", "latitude").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

	mock.ExpectQuery("FROM vehicles").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_code", "plate_number", "capacity", "driver_name", "driver_phone", "leader_name", "notes", "occupied", "latitude", "longitude", "located_at"}).
			AddRow(int64(3), "BUS-3", "AB 1234 CD", 40, "Pak Slamet", "0812", "Bu Rina", "", 0, nil, nil, nil))
	mock.ExpectQuery("FROM users").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}))

	svc := DocsService{VehicleRepo: repositories.VehicleRepository{DB: db}}
	pdf, filename, err := svc.GenerateVehicleManifest(3)
	if err != nil {
		t.Fatalf("GenerateVehicleManifest returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatal("GenerateVehicleManifest returned empty data")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
