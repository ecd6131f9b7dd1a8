package handlers

import (
	"net/http"
	"testing"

	intconfig "tourapp/internal/config"
	"tourapp/internal/http/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func newVehiclesRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api", middleware.Auth(testSecret))
	g.PUT("/vehicles/:id/location", UpdateVehicleLocation)
	return r
}

func expectLocationColumns(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("information_schema\\.columns").WithArgs("vehicles", "latitude").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("latitude"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("vehicles", "longitude").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("longitude"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("vehicles", "location_updated_at").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("location_updated_at"))
}

func TestUpdateVehicleLocationOtherVehicleForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	// peserta 5 ditempatkan di kendaraan 3, mencoba update kendaraan 7
	mock.ExpectQuery("SELECT vehicle_id FROM users").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"vehicle_id"}).AddRow(int64(3)))

	r := newVehiclesRouter()
	w := doAuthed(t, r, http.MethodPut, "/api/vehicles/7/location",
		`{"latitude":-7.6079,"longitude":110.2038}`, 5, "user")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 (body: %s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateVehicleLocationOwnVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT vehicle_id FROM users").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"vehicle_id"}).AddRow(int64(7)))
	expectLocationColumns(mock)
	mock.ExpectExec("UPDATE vehicles").
		WithArgs(-7.6079, 110.2038, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := newVehiclesRouter()
	w := doAuthed(t, r, http.MethodPut, "/api/vehicles/7/location",
		`{"latitude":-7.6079,"longitude":110.2038}`, 5, "user")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateVehicleLocationZeroCoordinatesValid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	// lintang 0 (khatulistiwa) harus diterima, bukan ditolak sebagai field kosong
	expectLocationColumns(mock)
	mock.ExpectExec("UPDATE vehicles").
		WithArgs(0.0, 109.3425, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := newVehiclesRouter()
	w := doAuthed(t, r, http.MethodPut, "/api/vehicles/7/location",
		`{"latitude":0,"longitude":109.3425}`, 1, "admin")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateVehicleLocationMissingCoordinate(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	r := newVehiclesRouter()
	w := doAuthed(t, r, http.MethodPut, "/api/vehicles/7/location",
		`{"latitude":-7.6079}`, 1, "admin")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body: %s)", w.Code, w.Body.String())
	}
}
