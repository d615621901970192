package courseValidator

import (
	"edume/middleware"
	"edume/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateTest validates the nested quiz payload: quiz name, optional passing
// score within [50,100], and at least one question, each with a non-empty
// answer set. Per-type answer shapes are enforced by the quiz builder.
func CreateTest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(struct {
			Quiz services.QuizSubmission `json:"quiz" validate:"required"`
		})

		if err := c.BodyParser(body); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		if err := validate.Struct(body); err != nil {
			errors := make(map[string]string)
			if fieldErrors, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range fieldErrors {
					errors[fe.Namespace()] = "Failed validation: " + fe.Tag()
				}
			} else {
				errors["quiz"] = "Invalid quiz payload"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", &body.Quiz)
		return c.Next()
	}
}
