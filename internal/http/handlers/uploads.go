package handlers

import (
	"net/http"

	"tourapp/internal/services"

	"github.com/gin-gonic/gin"
)

// batas ukuran file upload (10 MB)
const maxUploadBytes = 10 << 20

// POST /api/uploads — multipart field "file", balasannya URL untuk media_url/photo_url.
func UploadMedia(c *gin.Context) {
	svc := services.UploadService{RequestID: requestID(c)}
	if !svc.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upload media belum dikonfigurasi"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field file wajib diisi"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ukuran file maksimal 10MB"})
		return
	}

	url, err := svc.UploadMedia(c.Request.Context(), fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal upload media: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "upload berhasil", "url": url})
}
