package courseValidator

import (
	"edume/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Image       string `json:"image"`
			SubjectID   *uint  `json:"subject"`
			Description string `json:"description"`
			Price       int64  `json:"price"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		errors := make(map[string]string)

		// Validate Name
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required"
		} else if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required"
		}

		// Validate Price
		if reqData.Price < 0 {
			errors["price"] = "Price must not be negative"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func AddModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name       string `json:"name"`
			RequiredID *uint  `json:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

func Lesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Video    string `json:"video"`
			Duration int    `json:"duration"`
			Resource string `json:"resource"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required"
		}
		if reqData.Duration < 0 {
			errors["duration"] = "Duration must not be negative"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func EndLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ID uint `json:"id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		if reqData.ID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"id": "Lesson id is required"})
		}

		c.Locals("validatedEndLesson", reqData)
		return c.Next()
	}
}
