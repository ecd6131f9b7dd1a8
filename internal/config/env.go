package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	RedisAddr     string
	RedisUser     string
	RedisPassword string

	CloudinaryURL string
}

func LoadEnv() Env {
	if err := godotenv.Load(); err != nil {
		log.Println("File .env tidak ditemukan, pakai environment sistem")
	}

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	return Env{
		AppAddr: appAddr,
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: getenvDefault("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: getenvDefault("DB_HOST", "127.0.0.1:3306"),
		DBName: getenvDefault("DB_NAME", "tour_app"),

		JWTSecret: getenvDefault("JWT_SECRET", "super-secret-key-change-me"),

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisUser:     os.Getenv("REDIS_USER"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		CloudinaryURL: strings.TrimSpace(os.Getenv("CLOUDINARY_URL")),
	}
}

func getenvDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
