package handlers

import (
	"database/sql"
	"net/http"

	intconfig "tourapp/internal/config"
	"tourapp/internal/domain/models"
	"tourapp/internal/repositories"
	"tourapp/internal/services"

	"github.com/gin-gonic/gin"
)

func announcementService(c *gin.Context) services.AnnouncementService {
	return services.AnnouncementService{
		Repo:      repositories.AnnouncementRepository{},
		RequestID: requestID(c),
	}
}

// callerVehicleID mengambil vehicle_id peserta untuk filter audience=vehicle.
func callerVehicleID(userID int64) (*int64, error) {
	var vehicleID sql.NullInt64
	err := intconfig.DB.QueryRow(`SELECT vehicle_id FROM users WHERE id = ?`, userID).Scan(&vehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicleID.Valid {
		return nil, nil
	}
	v := vehicleID.Int64
	return &v, nil
}

// GET /api/announcements  (admin) — semua pengumuman.
func GetAnnouncements(c *gin.Context) {
	list, err := repositories.AnnouncementRepository{}.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil pengumuman: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /api/announcements/:id  (admin)
func GetAnnouncementByID(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	a, err := repositories.AnnouncementRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

// POST /api/announcements  (admin)
func CreateAnnouncement(c *gin.Context) {
	var payload models.AnnouncementPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	rc := reqCtx(c)
	svc := announcementService(c)

	a, err := svc.ValidatePayload(payload, rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	id, err := svc.Create(a)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan pengumuman: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "pengumuman berhasil dibuat", "id": id})
}

// PUT /api/announcements/:id  (admin)
func UpdateAnnouncement(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	var payload models.AnnouncementPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	rc := reqCtx(c)
	svc := announcementService(c)

	a, err := svc.ValidatePayload(payload, rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	a.ID = id

	if err := svc.Repo.Update(a); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "pengumuman berhasil diupdate"})
}

// DELETE /api/announcements/:id  (admin)
func DeleteAnnouncement(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	if err := (repositories.AnnouncementRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "pengumuman berhasil dihapus"})
}

// GET /api/announcements/poll — pengumuman unread untuk peserta login.
func PollAnnouncements(c *gin.Context) {
	rc := reqCtx(c)

	vehicleID, err := callerVehicleID(rc.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal cek kendaraan peserta: " + err.Error()})
		return
	}

	items, err := announcementService(c).Poll(c.Request.Context(), rc.UserID, vehicleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal poll pengumuman: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": len(items), "announcements": items})
}

// GET /api/announcements/unread-count
func GetUnreadCount(c *gin.Context) {
	rc := reqCtx(c)

	vehicleID, err := callerVehicleID(rc.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal cek kendaraan peserta: " + err.Error()})
		return
	}

	n, err := announcementService(c).UnreadCount(c.Request.Context(), rc.UserID, vehicleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal hitung pengumuman: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// POST /api/announcements/:id/read — tandai sudah dibaca (idempotent).
func MarkAnnouncementRead(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	rc := reqCtx(c)
	if err := announcementService(c).MarkRead(c.Request.Context(), id, rc.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "pengumuman ditandai sudah dibaca"})
}
