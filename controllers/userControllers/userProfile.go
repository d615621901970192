package userController

import (
	"edume/database"
	"edume/middleware"
	"edume/models"
	"edume/services"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers lists users, optionally filtered by role (student/teacher).
func GetAllUsers(c *fiber.Ctx) error {
	role := c.Query("role")

	db := database.Database.Db.Where("is_deleted = ?", false)
	switch role {
	case "student":
		db = db.Where("is_student = ?", true)
	case "teacher":
		db = db.Where("is_student = ?", false)
	}

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to fetch users")
	}

	list := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		list = append(list, users[i].Public())
	}

	return middleware.SuccessResponse(c, fiber.Map{"users": list})
}

// GetUsersCount reports student/teacher/total counts.
func GetUsersCount(c *fiber.Ctx) error {
	db := database.Database.Db

	var students, teachers, total int64
	db.Model(&models.User{}).Where("is_deleted = ? AND is_student = ?", false, true).Count(&students)
	db.Model(&models.User{}).Where("is_deleted = ? AND is_student = ?", false, false).Count(&teachers)
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&total)

	return middleware.SuccessResponse(c, fiber.Map{
		"students": students,
		"teachers": teachers,
		"users":    total,
	})
}

// GetOneUser returns one user's profile with their rating submissions.
func GetOneUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"id": "Invalid user id"})
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		return middleware.NotFoundResponse(c, "id", "User not found")
	}

	ratings, err := services.UserRatings(db, user.ID)
	if err != nil {
		return middleware.InternalErrorResponse(c, "Failed to fetch ratings")
	}

	return middleware.SuccessResponse(c, fiber.Map{
		"user":    user.Public(),
		"ratings": ratings,
	})
}

// UpdateUser updates a user's profile fields.
func UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"id": "Invalid user id"})
	}

	reqData, ok := c.Locals("validatedUserUpdate").(*struct {
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		MiddleName string `json:"middle_name"`
		Bio        string `json:"bio"`
		Email      string `json:"email"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		return middleware.NotFoundResponse(c, "id", "User not found")
	}

	updates := map[string]interface{}{
		"first_name":  reqData.FirstName,
		"last_name":   reqData.LastName,
		"middle_name": reqData.MiddleName,
		"bio":         reqData.Bio,
		"email":       reqData.Email,
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to update user")
	}

	return middleware.SuccessResponse(c, nil)
}
