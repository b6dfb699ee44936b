// internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sipelanggaran_backend/internals/configs"
	"sipelanggaran_backend/internals/features/users/auth/dto"
	"sipelanggaran_backend/internals/features/users/auth/service"
	helper "sipelanggaran_backend/internals/helpers"
	authMw "sipelanggaran_backend/internals/middlewares/auth"
)

type AuthController struct {
	Finder service.TeacherFinder
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{Finder: service.NewGormTeacherFinder(db)}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

/* ============================================
   POST /api/auth/login-google
   Verifikasi ID token Google, lalu peran
   ditentukan dari email: admin atau guru.
   ============================================ */
func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Login Google tidak dikonfigurasi")
	}

	var body dto.GoogleLoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(body.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "ID token Google tidak valid")
	}
	claims, err := googleAuthIDTokenVerifier.Decode(body.IDToken)
	if err != nil || claims.Email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "ID token Google tidak valid")
	}

	identity, err := service.ResolveIdentity(c.Context(), ctrl.Finder, claims.Email)
	if errors.Is(err, service.ErrUnknownIdentity) {
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	}
	if err != nil {
		log.Println("[ERROR] Gagal memeriksa direktori guru:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa identitas")
	}

	return ctrl.respondWithToken(c, identity)
}

/* ============================================
   POST /api/auth/login-admin
   Jalur alternatif: email + password admin.
   ============================================ */
func (ctrl *AuthController) LoginAdmin(c *fiber.Ctx) error {
	var body dto.AdminLoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	if !strings.EqualFold(strings.TrimSpace(body.Email), configs.AdminEmail) ||
		!service.VerifyAdminPassword(body.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	identity := &service.Identity{
		Role:  authMw.RoleAdmin,
		Name:  "Admin",
		Email: strings.ToLower(configs.AdminEmail),
	}
	return ctrl.respondWithToken(c, identity)
}

/* ============================================
   POST /api/auth/logout
   ============================================ */
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return helper.JsonOK(c, "Berhasil logout", nil)
}

func (ctrl *AuthController) respondWithToken(c *fiber.Ctx, identity *service.Identity) error {
	token, err := service.IssueToken(identity)
	if err != nil {
		log.Println("[ERROR] Gagal menerbitkan token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menerbitkan token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: token,
		Role:        identity.Role,
		Name:        identity.Name,
		Email:       identity.Email,
		TeacherID:   identity.TeacherID,
	})
}
