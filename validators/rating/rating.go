package ratingValidator

import (
	"edume/middleware"
	"edume/services"

	"github.com/gofiber/fiber/v2"
)

func Rate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.RateSubmission)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course"] = "Course is required"
		}
		if reqData.ModuleID == 0 {
			errors["module"] = "Module is required"
		}
		if reqData.LessonID == 0 {
			errors["lesson"] = "Lesson is required"
		}
		if reqData.Score < 0 {
			errors["score"] = "Score must not be negative"
		}
		if reqData.Percent < 0 || reqData.Percent > 100 {
			errors["percent"] = "Percent must be between 0 and 100"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRate", reqData)
		return c.Next()
	}
}

func Ratings() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint   `json:"course"`
			Type     string `json:"type"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course"] = "Course is required"
		}
		switch reqData.Type {
		case "", "monthly", "weekly", "daily":
		default:
			errors["type"] = "Type must be monthly, weekly or daily"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRatings", reqData)
		return c.Next()
	}
}
