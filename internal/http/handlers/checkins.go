package handlers

import (
	"net/http"
	"strconv"
	"strings"

	intconfig "tourapp/internal/config"
	"tourapp/internal/domain/models"
	"tourapp/internal/repositories"
	"tourapp/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/checkins/sessions
func GetCheckinSessions(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT id, name, DATE_FORMAT(session_date, '%Y-%m-%d'), created_by
		FROM checkin_sessions
		ORDER BY session_date DESC, id DESC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil sesi absensi: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.CheckinSession{}
	for rows.Next() {
		var s models.CheckinSession
		if err := rows.Scan(&s.ID, &s.Name, &s.SessionDate, &s.CreatedBy); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal scan sesi: " + err.Error()})
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

type checkinSessionRequest struct {
	Name        string `json:"name" binding:"required"`
	SessionDate string `json:"session_date" binding:"required"`
}

// POST /api/checkins/sessions  (admin)
func CreateCheckinSession(c *gin.Context) {
	var req checkinSessionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !validDate(req.SessionDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format session_date harus YYYY-MM-DD"})
		return
	}

	rc := reqCtx(c)
	res, err := intconfig.DB.Exec(`
		INSERT INTO checkin_sessions (name, session_date, created_by)
		VALUES (?, ?, ?)
	`, strings.TrimSpace(req.Name), strings.TrimSpace(req.SessionDate), rc.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat sesi absensi: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	utils.LogEvent(requestID(c), "checkin", "create_session", "session_id="+itoa64(id))
	c.JSON(http.StatusCreated, gin.H{"message": "sesi absensi berhasil dibuat", "id": id})
}

// PUT /api/checkins/sessions/:id  (admin)
func UpdateCheckinSession(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var req checkinSessionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !validDate(req.SessionDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format session_date harus YYYY-MM-DD"})
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE checkin_sessions SET name = ?, session_date = ? WHERE id = ?
	`, strings.TrimSpace(req.Name), strings.TrimSpace(req.SessionDate), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update sesi absensi: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int
		_ = intconfig.DB.QueryRow(`SELECT COUNT(*) FROM checkin_sessions WHERE id=?`, id).Scan(&exists)
		if exists == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "sesi absensi tidak ditemukan"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "sesi absensi berhasil diupdate"})
}

// DELETE /api/checkins/sessions/:id  (admin) — ikut menghapus catatan kehadirannya.
func DeleteCheckinSession(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	if _, err := intconfig.DB.Exec(`DELETE FROM checkins WHERE session_id = ?`, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus catatan absensi: " + err.Error()})
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM checkin_sessions WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hapus sesi absensi: " + err.Error()})
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "sesi absensi tidak ditemukan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sesi absensi berhasil dihapus"})
}

// POST /api/checkins  (admin) — upsert satu catatan kehadiran.
func UpsertCheckin(c *gin.Context) {
	var payload models.CheckinPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	rc := reqCtx(c)
	repo := repositories.CheckinRepository{}
	if err := repo.UpsertCheckin(payload, rc.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(requestID(c), "checkin", "upsert",
		"session_id="+itoa64(payload.SessionID)+" user_id="+itoa64(payload.UserID))
	c.JSON(http.StatusOK, gin.H{"message": "absensi berhasil disimpan"})
}

// GET /api/checkins?session_id=&vehicle_id=
func GetCheckins(c *gin.Context) {
	sessionID, _ := strconv.ParseInt(strings.TrimSpace(c.Query("session_id")), 10, 64)
	vehicleID, _ := strconv.ParseInt(strings.TrimSpace(c.Query("vehicle_id")), 10, 64)

	if sessionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id wajib diisi"})
		return
	}

	repo := repositories.CheckinRepository{}
	list, err := repo.ListCheckins(repositories.CheckinFilter{SessionID: sessionID, VehicleID: vehicleID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil absensi: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /api/checkins/recap?session_id=
func GetCheckinRecap(c *gin.Context) {
	sessionID, _ := strconv.ParseInt(strings.TrimSpace(c.Query("session_id")), 10, 64)
	if sessionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id wajib diisi"})
		return
	}

	repo := repositories.CheckinRepository{}
	recap, err := repo.Recap(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat rekap absensi: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, recap)
}
