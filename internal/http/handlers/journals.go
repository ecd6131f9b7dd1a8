package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	intconfig "tourapp/internal/config"
	intdb "tourapp/internal/db"
	"tourapp/internal/domain/models"

	"github.com/gin-gonic/gin"
)

const journalSelect = `
	SELECT
		id,
		user_id,
		DATE_FORMAT(trip_date, '%Y-%m-%d') AS trip_date,
		title,
		COALESCE(content,'') AS content,
		COALESCE(mood,'') AS mood,
		created_at,
		updated_at
	FROM journals
`

func scanJournalRow(scan func(dest ...any) error) (models.Journal, error) {
	var j models.Journal
	err := scan(&j.ID, &j.UserID, &j.TripDate, &j.Title, &j.Content, &j.Mood, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

// GET /api/journals?user_id=  — milik sendiri; admin boleh lihat peserta lain via user_id.
func GetJournals(c *gin.Context) {
	rc := reqCtx(c)

	targetID := rc.UserID
	if uidStr := strings.TrimSpace(c.Query("user_id")); uidStr != "" && rc.IsAdmin() {
		if uid, err := strconv.ParseInt(uidStr, 10, 64); err == nil && uid > 0 {
			targetID = uid
		}
	}

	rows, err := intconfig.DB.Query(journalSelect+` WHERE user_id = ? ORDER BY trip_date DESC, id DESC`, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil jurnal: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Journal{}
	for rows.Next() {
		j, err := scanJournalRow(rows.Scan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal scan jurnal: " + err.Error()})
			return
		}
		list = append(list, j)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterasi rows: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /api/journals/:id — pemilik atau admin.
func GetJournalByID(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	row := intconfig.DB.QueryRow(journalSelect+` WHERE id = ?`, id)
	j, err := scanJournalRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "jurnal tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query jurnal: " + err.Error()})
		return
	}

	rc := reqCtx(c)
	if !rc.IsAdmin() && j.UserID != rc.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "tidak boleh melihat jurnal orang lain"})
		return
	}

	c.JSON(http.StatusOK, j)
}

// POST /api/journals
func CreateJournal(c *gin.Context) {
	var payload models.JournalPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	if !validDate(payload.TripDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format trip_date harus YYYY-MM-DD"})
		return
	}
	if strings.TrimSpace(payload.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title wajib diisi"})
		return
	}

	rc := reqCtx(c)
	res, err := intconfig.DB.Exec(`
		INSERT INTO journals (user_id, trip_date, title, content, mood, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, rc.UserID,
		strings.TrimSpace(payload.TripDate),
		strings.TrimSpace(payload.Title),
		intdb.NullIfEmpty(payload.Content),
		intdb.NullIfEmpty(strings.TrimSpace(payload.Mood)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan jurnal: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "jurnal berhasil disimpan", "id": id})
}

// PUT /api/journals/:id — hanya pemilik.
func UpdateJournal(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var payload models.JournalPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if !validDate(payload.TripDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format trip_date harus YYYY-MM-DD"})
		return
	}
	if strings.TrimSpace(payload.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title wajib diisi"})
		return
	}

	rc := reqCtx(c)
	res, err := intconfig.DB.Exec(`
		UPDATE journals
		SET trip_date = ?, title = ?, content = ?, mood = ?, updated_at = NOW()
		WHERE id = ? AND user_id = ?
	`, strings.TrimSpace(payload.TripDate),
		strings.TrimSpace(payload.Title),
		intdb.NullIfEmpty(payload.Content),
		intdb.NullIfEmpty(strings.TrimSpace(payload.Mood)),
		id, rc.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update jurnal: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		_ = intconfig.DB.QueryRow(`SELECT COUNT(*) FROM journals WHERE id=? AND user_id=?`, id, rc.UserID).Scan(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "jurnal tidak ditemukan"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "jurnal berhasil diupdate"})
}

// DELETE /api/journals/:id — hanya pemilik.
func DeleteJournal(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	rc := reqCtx(c)
	res, err := intconfig.DB.Exec(`DELETE FROM journals WHERE id = ? AND user_id = ?`, id, rc.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus jurnal: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "jurnal tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "jurnal berhasil dihapus"})
}
