package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims adalah isi token yang dipakai aplikasi.
type TokenClaims struct {
	UserID int64
	Role   string
}

// SignToken membuat JWT HS256 berumur 24 jam.
func SignToken(secret []byte, userID int64, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(secret)
}

// ParseToken memverifikasi signature + expiry lalu mengembalikan claims aplikasi.
func ParseToken(secret []byte, tokenString string) (TokenClaims, error) {
	var out TokenClaims

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("metode signing tidak dikenal: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return out, fmt.Errorf("token tidak valid: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return out, fmt.Errorf("claims tidak terbaca")
	}

	uid, ok := claims["user_id"].(float64)
	if !ok || uid <= 0 {
		return out, fmt.Errorf("user_id tidak ditemukan di token")
	}
	role, _ := claims["role"].(string)

	out.UserID = int64(uid)
	out.Role = role
	return out, nil
}
