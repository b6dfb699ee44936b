// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"sipelanggaran_backend/internals/configs"
)

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// AuthMiddleware memverifikasi Bearer token dan menyimpan klaim ke Locals:
// role, name, email, teacher_id (khusus guru).
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(configs.JWTSecret), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token invalid")
		}

		if err := validateExpiry(claims); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		role, _ := claims["role"].(string)
		if role != RoleAdmin && role != RoleTeacher {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Role tidak dikenal")
		}
		c.Locals("role", role)
		if v, ok := claims["name"].(string); ok {
			c.Locals("name", v)
		}
		if v, ok := claims["email"].(string); ok {
			c.Locals("email", v)
		}
		if v, ok := claims["teacher_id"].(float64); ok {
			c.Locals("teacher_id", int64(v))
		}

		return c.Next()
	}
}

// IsAdmin membatasi route ke role admin (dipasang setelah AuthMiddleware).
func IsAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("role").(string); role != RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Hanya admin yang boleh mengakses")
		}
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := strings.TrimSpace(c.Get("Authorization"))
	if h == "" {
		// fallback cookie untuk klien web
		if tok := strings.TrimSpace(c.Cookies("access_token")); tok != "" {
			return tok, nil
		}
		return "", fmt.Errorf("Authorization header kosong")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("format Authorization harus 'Bearer <token>'")
	}
	return strings.TrimSpace(parts[1]), nil
}

func validateExpiry(claims jwt.MapClaims) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return fmt.Errorf("exp claim hilang")
	}
	if time.Now().After(time.Unix(int64(exp), 0).Add(30 * time.Second)) {
		return fmt.Errorf("token expired")
	}
	return nil
}
