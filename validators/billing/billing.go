package billingValidator

import (
	"edume/middleware"

	"github.com/gofiber/fiber/v2"
)

func Order() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"course"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		if reqData.CourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"course": "Course is required"})
		}

		c.Locals("validatedOrder", reqData)
		return c.Next()
	}
}

func Buy() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OrderID  uint `json:"order_id"`
			CourseID uint `json:"course"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		errors := make(map[string]string)

		if reqData.OrderID == 0 {
			errors["order_id"] = "Order id is required"
		}
		if reqData.CourseID == 0 {
			errors["course"] = "Course is required"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBuy", reqData)
		return c.Next()
	}
}
