// file: internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "sipelanggaran_backend/internals/features/users/auth/controller"
	"sipelanggaran_backend/internals/middlewares"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := app.Group("/api/auth", middlewares.LoginRateLimiter())
	auth.Post("/login-google", ctrl.LoginGoogle)
	auth.Post("/login-admin", ctrl.LoginAdmin)
	auth.Post("/logout", ctrl.Logout)
}
