package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tourapp/internal/services"

	"github.com/gin-gonic/gin"
)

func newAuthRouter(secret []byte, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/", Auth(secret))
	if len(roles) > 0 {
		g.Use(RequireRoles(roles...))
	}
	g.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": AuthUserID(c), "role": AuthUserRole(c)})
	})
	return r
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r := newAuthRouter([]byte("rahasia"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	secret := []byte("rahasia")
	token, err := services.SignToken(secret, 5, "user")
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	r := newAuthRouter(secret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
}

func TestRequireRolesBlocksNonAdmin(t *testing.T) {
	secret := []byte("rahasia")
	token, err := services.SignToken(secret, 5, "user")
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	r := newAuthRouter(secret, "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequireRolesAllowsAdmin(t *testing.T) {
	secret := []byte("rahasia")
	token, err := services.SignToken(secret, 1, "admin")
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	r := newAuthRouter(secret, "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
}
