package controllers

import (
	"edume/database"
	"edume/middleware"
	"edume/models"

	"github.com/gofiber/fiber/v2"
)

// GetCourseModules lists the course's modules in sequence order.
func GetCourseModules(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}
	courseID, err := c.ParamsInt("course_id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"course_id": "Invalid course id"})
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.NotFoundResponse(c, "course_id", "Course not found")
	}

	var modules []models.Module
	if err := db.Where("course_id = ?", course.ID).
		Order("sequence asc, id asc").
		Find(&modules).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to fetch modules")
	}

	list := make([]fiber.Map, 0, len(modules))
	for i := range modules {
		list = append(list, moduleJSON(db, &modules[i], userID))
	}

	return middleware.SuccessResponse(c, fiber.Map{
		"course": fiber.Map{
			"id":   course.ID,
			"name": course.Name,
		},
		"modules": list,
	})
}

// GetCourseModule returns one module with its lesson chain.
func GetCourseModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}
	courseID, err := c.ParamsInt("course_id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"course_id": "Invalid course id"})
	}
	moduleID, err := c.ParamsInt("module_id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"module_id": "Invalid module id"})
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.NotFoundResponse(c, "course_id", "Course not found")
	}

	var module models.Module
	if err := db.Where("id = ? AND course_id = ?", moduleID, course.ID).First(&module).Error; err != nil {
		return middleware.NotFoundResponse(c, "module_id", "Module not found")
	}

	return middleware.SuccessResponse(c, fiber.Map{
		"course": fiber.Map{
			"id":   course.ID,
			"name": course.Name,
		},
		"module": moduleJSON(db, &module, userID),
	})
}

// AddModule appends a module to the course, ranked after the existing ones.
func AddModule(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("course_id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"course_id": "Invalid course id"})
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		Name       string `json:"name"`
		RequiredID *uint  `json:"required"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.NotFoundResponse(c, "course_id", "Course not found")
	}

	if reqData.RequiredID != nil {
		if err := db.First(&models.Module{}, *reqData.RequiredID).Error; err != nil {
			return middleware.NotFoundResponse(c, "required", "Required module not found")
		}
	}

	// Next sequence rank within the course.
	var maxSeq struct{ Max int }
	db.Model(&models.Module{}).
		Select("COALESCE(MAX(sequence), 0) as max").
		Where("course_id = ?", course.ID).
		Scan(&maxSeq)

	module := models.Module{
		CourseID:   course.ID,
		Name:       reqData.Name,
		RequiredID: reqData.RequiredID,
		Sequence:   maxSeq.Max + 1,
	}
	if err := db.Create(&module).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to create module")
	}

	return middleware.SuccessResponse(c, fiber.Map{"id": module.ID})
}
