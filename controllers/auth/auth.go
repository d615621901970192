package authController

import (
	"edume/config"
	"edume/database"
	"edume/middleware"
	"edume/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*struct {
		Phone      string `json:"phone"`
		Email      string `json:"email"`
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		MiddleName string `json:"middle_name"`
		Password   string `json:"password"`
		IsStudent  *bool  `json:"is_student"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	db := database.Database.Db

	// Check if phone already exists
	if err := db.Where("phone = ?", reqData.Phone).First(&models.User{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, map[string]string{
			"phone": "Phone number is already registered",
		})
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.InternalErrorResponse(c, "Failed to process your request")
	}

	isStudent := true
	if reqData.IsStudent != nil {
		isStudent = *reqData.IsStudent
	}

	newUser := models.User{
		Phone:      reqData.Phone,
		Email:      reqData.Email,
		FirstName:  reqData.FirstName,
		LastName:   reqData.LastName,
		MiddleName: reqData.MiddleName,
		Password:   string(hashedPassword),
		IsStudent:  isStudent,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.InternalErrorResponse(c, "Failed to sign up user")
	}

	return middleware.SuccessResponse(c, fiber.Map{"id": newUser.ID})
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("phone = ? AND is_deleted = ?", reqData.Phone, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{
			"phone": "Phone number not found",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{
			"password": "Incorrect password",
		})
	}

	token, err := middleware.GenerateJWT(user.ID, user.Phone, user.TokenVersion)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.InternalErrorResponse(c, "Failed to issue token")
	}

	image := user.Image

	return middleware.SuccessResponse(c, fiber.Map{
		"token":      token,
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"image":      image,
	})
}

// Logout bumps the user's token version, revoking every token issued before
// this call.
func Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}

	db := database.Database.Db

	if err := db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error; err != nil {
		log.Printf("Error rotating token version for user %d: %v", userID, err)
		return middleware.InternalErrorResponse(c, "Failed to log out")
	}

	return middleware.SuccessResponse(c, nil)
}

func ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}

	reqData, ok := c.Locals("validatedChangePassword").(*struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "User not found"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.OldPassword)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{
			"old_password": "Old password is incorrect",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.InternalErrorResponse(c, "Failed to process your request")
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to update password")
	}

	return middleware.SuccessResponse(c, nil)
}
