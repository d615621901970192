package authRoutes

import (
	authController "edume/controllers/auth"
	"edume/middleware"
	authValidator "edume/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup/login and account management routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup/", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login/", authValidator.Login(), authController.Login)
	authGroup.Post("/logout/", middleware.JWTMiddleware, authController.Logout)
	authGroup.Post("/change-password/", middleware.JWTMiddleware, authValidator.ChangePassword(), authController.ChangePassword)
}
