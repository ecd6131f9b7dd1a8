package config

import (
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
)

var Cloudinary *cloudinary.Cloudinary

// ConnectCloudinary menyiapkan client upload media bila CLOUDINARY_URL diisi.
func ConnectCloudinary(env Env) *cloudinary.Cloudinary {
	if env.CloudinaryURL == "" {
		log.Println("CLOUDINARY_URL kosong, upload media dinonaktifkan")
		return nil
	}

	cld, err := cloudinary.NewFromURL(env.CloudinaryURL)
	if err != nil {
		log.Printf("Gagal inisialisasi Cloudinary, upload media dinonaktifkan: %v", err)
		return nil
	}

	Cloudinary = cld
	log.Println("Cloudinary siap dipakai untuk upload media")
	return cld
}
