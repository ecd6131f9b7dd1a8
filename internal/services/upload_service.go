package services

import (
	"context"
	"fmt"
	"mime/multipart"

	intconfig "tourapp/internal/config"
	"tourapp/internal/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadService mengunggah media kiriman peserta ke Cloudinary.
type UploadService struct {
	Cld       *cloudinary.Cloudinary
	RequestID string
}

func (s UploadService) cld() *cloudinary.Cloudinary {
	if s.Cld != nil {
		return s.Cld
	}
	return intconfig.Cloudinary
}

// Enabled menyatakan apakah upload media dikonfigurasi.
func (s UploadService) Enabled() bool {
	return s.cld() != nil
}

// UploadMedia mengunggah satu file multipart ke folder tourapp dan
// mengembalikan secure URL untuk disimpan di posts.media_url / users.photo_url.
func (s UploadService) UploadMedia(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	cld := s.cld()
	if cld == nil {
		return "", fmt.Errorf("upload media belum dikonfigurasi (CLOUDINARY_URL kosong)")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file upload: %w", err)
	}
	defer src.Close()

	resp, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "tourapp"})
	if err != nil {
		return "", fmt.Errorf("gagal upload ke Cloudinary: %w", err)
	}

	utils.LogEvent(s.RequestID, "upload", "media", "public_id="+resp.PublicID)
	return resp.SecureURL, nil
}
