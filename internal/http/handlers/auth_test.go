package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "tourapp/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

func TestRegisterDuplicateRaceConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	// pre-check lolos, tapi insert kalah race dengan registrasi lain
	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").WithArgs("budi@example.com", "budi").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'budi' for key 'username'"})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/register", Register)

	body := `{"name":"Budi","username":"budi","email":"budi@example.com","phone":"0812","password":"rahasia1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (body: %s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
