package authValidator

import (
	"edume/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Phone      string `json:"phone"`
			Email      string `json:"email"`
			FirstName  string `json:"first_name"`
			LastName   string `json:"last_name"`
			MiddleName string `json:"middle_name"`
			Password   string `json:"password"`
			IsStudent  *bool  `json:"is_student"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Phone) == "" {
			errors["phone"] = "Phone is required"
		}
		if strings.TrimSpace(reqData.FirstName) == "" {
			errors["first_name"] = "First name is required"
		}
		if len(reqData.Password) < 6 {
			errors["password"] = "Password must be at least 6 characters long"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Phone    string `json:"phone"`
			Password string `json:"password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Phone) == "" {
			errors["phone"] = "Phone is required"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OldPassword string `json:"old_password"`
			NewPassword string `json:"new_password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		errors := make(map[string]string)

		if reqData.OldPassword == "" {
			errors["old_password"] = "Old password is required"
		}
		if len(reqData.NewPassword) < 6 {
			errors["new_password"] = "New password must be at least 6 characters long"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChangePassword", reqData)
		return c.Next()
	}
}

func UserUpdate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FirstName  string `json:"first_name"`
			LastName   string `json:"last_name"`
			MiddleName string `json:"middle_name"`
			Bio        string `json:"bio"`
			Email      string `json:"email"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request body"})
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.FirstName) == "" {
			errors["first_name"] = "First name is required"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}
