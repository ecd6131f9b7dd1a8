package handlers

import (
	"net/http"
	"strings"

	intconfig "tourapp/internal/config"
	"tourapp/internal/domain"
	"tourapp/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type adminCreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// POST /api/admin/users  (admin) — buat akun peserta/admin langsung dari panel.
func AdminCreateUser(c *gin.Context) {
	var req adminCreateUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleAdmin && role != domain.RoleUser {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role harus admin atau user"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password minimal 6 karakter"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal meng-hash password"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 'active', NOW(), NOW())
	`, strings.TrimSpace(req.Name), strings.TrimSpace(req.Username), strings.TrimSpace(req.Email),
		strings.TrimSpace(req.Phone), string(hash), role)
	if err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email atau username sudah terdaftar"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan user: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	utils.LogEvent(requestID(c), "admin", "create_user", "user_id="+itoa64(id)+" role="+role)

	c.JSON(http.StatusCreated, gin.H{"message": "user berhasil dibuat", "id": id})
}

type adminRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// PUT /api/admin/users/:id/role  (admin) — naikkan/turunkan admin.
func AdminSetUserRole(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	rc := reqCtx(c)
	if rc.UserID == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tidak bisa mengubah role sendiri"})
		return
	}

	var req adminRoleRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != domain.RoleAdmin && role != domain.RoleUser {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role harus admin atau user"})
		return
	}

	res, err := intconfig.DB.Exec(`UPDATE users SET role = ?, updated_at = NOW() WHERE id = ?`, role, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update role: " + err.Error()})
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user tidak ditemukan"})
		return
	}

	utils.LogEvent(requestID(c), "admin", "set_role", "user_id="+itoa64(id)+" role="+role)
	c.JSON(http.StatusOK, gin.H{"message": "role berhasil diupdate"})
}

type adminResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// PUT /api/admin/users/:id/password  (admin) — reset password peserta.
func AdminResetPassword(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var req adminResetPasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password minimal 6 karakter"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal meng-hash password"})
		return
	}

	res, err := intconfig.DB.Exec(`UPDATE users SET password_hash = ?, updated_at = NOW() WHERE id = ?`, string(hash), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal reset password: " + err.Error()})
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user tidak ditemukan"})
		return
	}

	utils.LogEvent(requestID(c), "admin", "reset_password", "user_id="+itoa64(id))
	c.JSON(http.StatusOK, gin.H{"message": "password berhasil direset"})
}
