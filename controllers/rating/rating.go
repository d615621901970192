package ratingController

import (
	"errors"

	"edume/database"
	"edume/middleware"
	"edume/models"
	"edume/services"

	"github.com/gofiber/fiber/v2"
)

// Rate records a scored submission and folds it into the caller's running
// course total.
func Rate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}

	sub, ok := c.Locals("validatedRate").(*services.RateSubmission)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	_, err := services.Rate(database.Database.Db, userID, sub)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.NotFoundResponse(c, "rate", "Course, module or lesson not found")
		}
		return middleware.InternalErrorResponse(c, "Failed to save rating")
	}

	return middleware.SuccessResponse(c, fiber.Map{"message": "Saved!"})
}

// Rates lists the caller's rating submissions.
func Rates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}

	ratings, err := services.UserRatings(database.Database.Db, userID)
	if err != nil {
		return middleware.InternalErrorResponse(c, "Failed to fetch ratings")
	}

	db := database.Database.Db
	list := make([]fiber.Map, 0, len(ratings))
	for i := range ratings {
		var course models.Course
		db.First(&course, ratings[i].CourseID)
		list = append(list, fiber.Map{
			"course": fiber.Map{
				"id":    course.ID,
				"name":  course.Name,
				"price": course.Price,
			},
			"module":  ratings[i].ModuleID,
			"lesson":  ratings[i].LessonID,
			"score":   ratings[i].Score,
			"percent": ratings[i].Percent,
			"created": ratings[i].CreatedAt,
		})
	}

	return middleware.SuccessResponse(c, fiber.Map{"ratings": list})
}

// Ratings reports a course's rating totals over the requested window.
func Ratings(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRatings").(*struct {
		CourseID uint   `json:"course"`
		Type     string `json:"type"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.NotFoundResponse(c, "course", "Course not found")
	}

	window := services.RatingWindow(reqData.Type)
	ratings, err := services.CourseRatings(db, course.ID, window)
	if err != nil {
		return middleware.InternalErrorResponse(c, "Failed to fetch ratings")
	}

	list := make([]fiber.Map, 0, len(ratings))
	for i := range ratings {
		var author models.User
		db.First(&author, ratings[i].AuthorID)
		list = append(list, fiber.Map{
			"author": author.Public(),
			"course": fiber.Map{
				"id":    course.ID,
				"name":  course.Name,
				"price": course.Price,
			},
			"score": ratings[i].Score,
		})
	}

	return middleware.SuccessResponse(c, fiber.Map{"ratings": list})
}

// CoursesForRating lists every course in the short form the rating screen
// uses.
func CoursesForRating(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("is_deleted = ?", false).Find(&courses).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to fetch courses")
	}

	list := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		list = append(list, fiber.Map{
			"id":    courses[i].ID,
			"name":  courses[i].Name,
			"price": courses[i].Price,
		})
	}

	return middleware.SuccessResponse(c, fiber.Map{"courses": list})
}
