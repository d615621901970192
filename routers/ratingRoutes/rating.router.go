package ratingRoutes

import (
	ratingController "edume/controllers/rating"
	"edume/middleware"
	ratingValidator "edume/validators/rating"

	"github.com/gofiber/fiber/v2"
)

// SetupRatingRoutes sets up rating submission and reporting routes
func SetupRatingRoutes(app *fiber.App) {
	app.Post("/rate/", middleware.JWTMiddleware, ratingValidator.Rate(), ratingController.Rate)
	app.Get("/rates/", middleware.JWTMiddleware, ratingController.Rates)
	app.Post("/ratings/", middleware.JWTMiddleware, ratingValidator.Ratings(), ratingController.Ratings)
	app.Get("/rating/courses/", middleware.JWTMiddleware, ratingController.CoursesForRating)
}
