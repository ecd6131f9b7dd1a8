package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tourapp/internal/domain"
	"tourapp/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var jwtSecret = []byte("super-secret-key-change-me")

// SetJWTSecret dipanggil router saat bootstrap, sebelum handler menerima request.
func SetJWTSecret(secret string) {
	if strings.TrimSpace(secret) != "" {
		jwtSecret = []byte(secret)
	}
}

// JWTSecret mengembalikan secret aktif (dipakai middleware Auth di router).
func JWTSecret() []byte {
	return jwtSecret
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "body kosong", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
		return false
	}
	return true
}

// reqCtx mengambil identitas user hasil middleware Auth.
func reqCtx(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{
		UserID: middleware.AuthUserID(c),
		Role:   middleware.AuthUserRole(c),
	}
}

// requestID meneruskan request id dari middleware untuk logging.
func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

func itoa64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// pathID membaca :id positif dari path; 0 artinya tidak valid.
func pathID(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// pageLimit membaca pagination opsional ?page=&limit= dengan batas atas 200.
func pageLimit(c *gin.Context) (page, limit int, ok bool) {
	pageStr := strings.TrimSpace(c.Query("page"))
	limitStr := strings.TrimSpace(c.Query("limit"))
	if pageStr == "" || limitStr == "" {
		return 0, 0, false
	}
	page, _ = strconv.Atoi(pageStr)
	limit, _ = strconv.Atoi(limitStr)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return page, limit, true
}
