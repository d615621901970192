package middleware

import (
	"edume/config"
	"edume/database"
	"edume/models"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a JWT token for the user. The token carries the
// user's current token version; logout bumps the version and invalidates
// every previously issued token.
func GenerateJWT(userID uint, phone string, tokenVersion int) (string, error) {
	claims := jwt.MapClaims{
		"userId":       userID,
		"phone":        phone,
		"tokenVersion": tokenVersion,
		"iat":          time.Now().Unix(),                     // issued at
		"exp":          time.Now().Add(24 * time.Hour).Unix(), // expiry 24h
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware is a middleware to check for valid JWT token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	// Get the token from the Authorization header
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{
			"token": "Missing or invalid Authorization header",
		})
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{
			"token": "Invalid Authorization header format",
		})
	}

	tokenString := authHeader[len("Bearer "):]

	// Parse and validate the token
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		jwtSecret := []byte(config.AppConfig.JWTKey)
		return jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{
			"token": "Invalid or expired token",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{
			"token": "Invalid token payload",
		})
	}

	// JWT claims are decoded as float64, so cast it
	rawID, ok := claims["userId"].(float64)
	if !ok {
		return ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{
			"token": "Invalid token payload",
		})
	}
	userID := uint(rawID)

	version := 0
	if rawVersion, ok := claims["tokenVersion"].(float64); ok {
		version = int(rawVersion)
	}

	var user models.User
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", userID, false).
		First(&user).Error; err != nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{
			"token": "User not found",
		})
	}
	if user.TokenVersion != version {
		return ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{
			"token": "Token has been revoked",
		})
	}

	c.Locals("userId", userID)

	return c.Next()
}
