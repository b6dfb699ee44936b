// internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"sipelanggaran_backend/internals/configs"
)

const tokenTTL = 24 * time.Hour

// IssueToken menerbitkan JWT HS256 berumur 24 jam untuk identitas yang sudah
// di-resolve. Claim-nya yang dibaca ulang oleh middleware auth.
func IssueToken(id *Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"role":  id.Role,
		"name":  id.Name,
		"email": id.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	if id.TeacherID > 0 {
		claims["teacher_id"] = id.TeacherID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

// VerifyAdminPassword mencocokkan password terhadap ADMIN_PASSWORD.
// Nilai konfigurasi boleh berupa hash bcrypt atau teks polos; teks polos
// dibandingkan constant-time.
func VerifyAdminPassword(password string) bool {
	stored := configs.AdminPassword
	if stored == "" || password == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
