package controllers

import (
	"errors"

	"edume/database"
	"edume/middleware"
	"edume/services"

	"github.com/gofiber/fiber/v2"
)

// CreateTest builds a quiz from the authored payload and appends it to the
// module as a quiz-type lesson.
func CreateTest(c *fiber.Ctx) error {
	_, module, errResp := lessonScope(c)
	if module == nil {
		return errResp
	}

	sub, ok := c.Locals("validatedQuiz").(*services.QuizSubmission)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	quiz, lesson, err := services.BuildQuiz(database.Database.Db, module.ID, sub)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return middleware.ValidationErrorResponse(c, map[string]string{"quiz": err.Error()})
		}
		if errors.Is(err, services.ErrNotFound) {
			return middleware.NotFoundResponse(c, "module_id", "Module not found")
		}
		return middleware.InternalErrorResponse(c, "Failed to create quiz")
	}

	return middleware.SuccessResponse(c, fiber.Map{
		"quiz_id":   quiz.ID,
		"lesson_id": lesson.ID,
	})
}
