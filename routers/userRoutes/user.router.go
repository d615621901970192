package userRoutes

import (
	userController "edume/controllers/userControllers"
	"edume/middleware"
	authValidator "edume/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up user listing and profile routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users")

	userGroup.Get("/", middleware.JWTMiddleware, userController.GetAllUsers)
	userGroup.Get("/count/", middleware.JWTMiddleware, userController.GetUsersCount)
	userGroup.Get("/:id/", middleware.JWTMiddleware, userController.GetOneUser)
	userGroup.Post("/:id/update/", middleware.JWTMiddleware, authValidator.UserUpdate(), userController.UpdateUser)
}
