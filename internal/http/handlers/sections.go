package handlers

import (
	"net/http"
	"strings"

	intconfig "tourapp/internal/config"
	"tourapp/internal/domain"
	"tourapp/internal/domain/models"
	"tourapp/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/sections?all=1 — publik melihat yang visible; admin dengan all=1 melihat semua.
// Route ini publik, jadi token (kalau ada) diperiksa langsung di sini.
func GetSections(c *gin.Context) {
	showAll := strings.TrimSpace(c.Query("all")) == "1"
	if showAll {
		showAll = false
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if claims, err := services.ParseToken(jwtSecret, token); err == nil && claims.Role == domain.RoleAdmin {
				showAll = true
			}
		}
	}

	query := `SELECT id, title, COALESCE(body,''), COALESCE(sort_order,0), visible FROM sections`
	if !showAll {
		query += ` WHERE visible = 1`
	}
	query += ` ORDER BY sort_order ASC, id ASC`

	rows, err := intconfig.DB.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil section: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Section{}
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.Title, &s.Body, &s.SortOrder, &s.Visible); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal scan section: " + err.Error()})
			return
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterasi rows: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /api/sections  (admin)
func CreateSection(c *gin.Context) {
	var payload models.SectionPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	visible := true
	if payload.Visible != nil {
		visible = *payload.Visible
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO sections (title, body, sort_order, visible)
		VALUES (?, ?, ?, ?)
	`, strings.TrimSpace(payload.Title), payload.Body, payload.SortOrder, visible)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menambah section: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "section berhasil ditambahkan", "id": id})
}

// PUT /api/sections/:id  (admin)
func UpdateSection(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var payload models.SectionPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	visible := true
	if payload.Visible != nil {
		visible = *payload.Visible
	}

	res, err := intconfig.DB.Exec(`
		UPDATE sections SET title = ?, body = ?, sort_order = ?, visible = ? WHERE id = ?
	`, strings.TrimSpace(payload.Title), payload.Body, payload.SortOrder, visible, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update section: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		_ = intconfig.DB.QueryRow(`SELECT COUNT(*) FROM sections WHERE id=?`, id).Scan(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "section tidak ditemukan"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "section berhasil diupdate"})
}

// DELETE /api/sections/:id  (admin)
func DeleteSection(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM sections WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus section: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "section tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "section berhasil dihapus"})
}
