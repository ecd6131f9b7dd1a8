package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "tourapp/internal/config"
	"tourapp/internal/domain"
	"tourapp/internal/http/middleware"
	"tourapp/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

var testSecret = []byte("rahasia-test")

func newPostsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api", middleware.Auth(testSecret))
	g.GET("/posts", GetPosts)
	g.PUT("/posts/:id", UpdatePost)
	return r
}

func doAuthed(t *testing.T, r *gin.Engine, method, path, body string, userID int64, role string) *httptest.ResponseRecorder {
	t.Helper()

	token, err := services.SignToken(testSecret, userID, role)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func mustNow() time.Time { return time.Now() }

func postRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "author_name", "place_name", "description",
		"media_url", "tags", "status", "approved_by", "approved_at",
		"created_at", "updated_at",
	})
}

func TestGetPostsNonAdminSeesOnlyApproved(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	// filter status dari non-admin diabaikan: query tetap terkunci ke approved
	mock.ExpectQuery("FROM posts p").WithArgs(domain.PostApproved).
		WillReturnRows(postRows())

	r := newPostsRouter()
	w := doAuthed(t, r, http.MethodGet, "/api/posts?status=pending", "", 5, "user")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetPostsMineReturnsAllOwnStatuses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("FROM posts p").WithArgs(int64(5)).
		WillReturnRows(postRows().
			AddRow(int64(1), int64(5), "Budi", "Borobudur", "", "", "", domain.PostPending, nil, nil, mustNow(), mustNow()).
			AddRow(int64(2), int64(5), "Budi", "Prambanan", "", "", "", domain.PostRejected, nil, nil, mustNow(), mustNow()))

	r := newPostsRouter()
	w := doAuthed(t, r, http.MethodGet, "/api/posts?mine=1", "", 5, "user")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", w.Code, w.Body.String())
	}

	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 own posts, got %d", len(list))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetPostsAdminStatusFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("FROM posts p").WithArgs(domain.PostPending).
		WillReturnRows(postRows().
			AddRow(int64(3), int64(6), "Siti", "Malioboro", "", "", "", domain.PostPending, nil, nil, mustNow(), mustNow()))

	r := newPostsRouter()
	w := doAuthed(t, r, http.MethodGet, "/api/posts?status=pending", "", 1, "admin")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdatePostOwnerWhilePending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("SELECT user_id, status FROM posts").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(int64(5), domain.PostPending))
	mock.ExpectExec("UPDATE posts").
		WillReturnResult(sqlmock.NewResult(1, 1))

	r := newPostsRouter()
	w := doAuthed(t, r, http.MethodPut, "/api/posts/1", `{"place_name":"Borobudur sore"}`, 5, "user")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdatePostOwnerAfterModerationConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("SELECT user_id, status FROM posts").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(int64(5), domain.PostApproved))

	r := newPostsRouter()
	w := doAuthed(t, r, http.MethodPut, "/api/posts/1", `{"place_name":"Borobudur sore"}`, 5, "user")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 (body: %s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdatePostNonOwnerForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	intconfig.DB = db

	mock.ExpectQuery("SELECT user_id, status FROM posts").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(int64(6), domain.PostPending))

	r := newPostsRouter()
	w := doAuthed(t, r, http.MethodPut, "/api/posts/1", `{"place_name":"Borobudur sore"}`, 5, "user")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 (body: %s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
