package controllers

import (
	"errors"

	"edume/database"
	"edume/middleware"
	"edume/models"
	"edume/services"

	"github.com/gofiber/fiber/v2"
)

// lessonScope resolves the course/module pair from the path, enforcing that
// the module belongs to the course.
func lessonScope(c *fiber.Ctx) (*models.Course, *models.Module, error) {
	courseID, err := c.ParamsInt("course_id")
	if err != nil {
		return nil, nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"course_id": "Invalid course id"})
	}
	moduleID, err := c.ParamsInt("module_id")
	if err != nil {
		return nil, nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"module_id": "Invalid module id"})
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, nil, middleware.NotFoundResponse(c, "course_id", "Course not found")
	}
	var module models.Module
	if err := db.Where("id = ? AND course_id = ?", moduleID, course.ID).First(&module).Error; err != nil {
		return nil, nil, middleware.NotFoundResponse(c, "module_id", "Module not found")
	}
	return &course, &module, nil
}

// GetModuleLessons lists the module's lessons with the caller's unlock state.
func GetModuleLessons(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}
	_, module, errResp := lessonScope(c)
	if module == nil {
		return errResp
	}

	db := database.Database.Db

	var lessons []models.Lesson
	if err := db.Where("module_id = ?", module.ID).Order("id asc").Find(&lessons).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to fetch lessons")
	}

	list := make([]fiber.Map, 0, len(lessons))
	for i := range lessons {
		list = append(list, lessonBrief(db, &lessons[i], userID))
	}

	return middleware.SuccessResponse(c, fiber.Map{"lessons": list})
}

// GetModuleLesson returns one lesson in full, is_open computed for the caller.
func GetModuleLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}
	_, module, errResp := lessonScope(c)
	if module == nil {
		return errResp
	}

	lessonID, err := c.ParamsInt("lesson_id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"lesson_id": "Invalid lesson id"})
	}

	db := database.Database.Db

	var lesson models.Lesson
	if err := db.Where("id = ? AND module_id = ?", lessonID, module.ID).First(&lesson).Error; err != nil {
		return middleware.NotFoundResponse(c, "lesson_id", "Lesson not found")
	}

	return middleware.SuccessResponse(c, fiber.Map{
		"lesson": lessonDetail(db, &lesson, userID),
	})
}

// EndLesson marks the lesson finished for the caller. Finishing the tail
// lesson of a module unlocks the next module of the course.
func EndLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}

	reqData, ok := c.Locals("validatedEndLesson").(*struct {
		ID uint `json:"id"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	if err := services.EndLesson(database.Database.Db, reqData.ID, userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.NotFoundResponse(c, "id", "Lesson not found")
		}
		return middleware.InternalErrorResponse(c, "Failed to end lesson")
	}

	return middleware.SuccessResponse(c, nil)
}

// AddLesson appends a content lesson to the module's chain.
func AddLesson(c *fiber.Ctx) error {
	_, module, errResp := lessonScope(c)
	if module == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Name     string `json:"name"`
		Video    string `json:"video"`
		Duration int    `json:"duration"`
		Resource string `json:"resource"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	lesson := models.Lesson{
		Name:     reqData.Name,
		Video:    reqData.Video,
		Duration: reqData.Duration,
		Resource: reqData.Resource,
		Type:     models.LessonTypeContent,
	}
	if err := services.AppendLesson(database.Database.Db, module.ID, &lesson); err != nil {
		return middleware.InternalErrorResponse(c, "Failed to create lesson")
	}

	return middleware.SuccessResponse(c, fiber.Map{"id": lesson.ID})
}

// EditLesson updates a lesson's content fields. Chain pointers are managed by
// the append path and stay untouched here.
func EditLesson(c *fiber.Ctx) error {
	_, module, errResp := lessonScope(c)
	if module == nil {
		return errResp
	}

	lessonID, err := c.ParamsInt("lesson_id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"lesson_id": "Invalid lesson id"})
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Name     string `json:"name"`
		Video    string `json:"video"`
		Duration int    `json:"duration"`
		Resource string `json:"resource"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	db := database.Database.Db

	var lesson models.Lesson
	if err := db.Where("id = ? AND module_id = ?", lessonID, module.ID).First(&lesson).Error; err != nil {
		return middleware.NotFoundResponse(c, "lesson_id", "Lesson not found")
	}

	updates := map[string]interface{}{
		"name":     reqData.Name,
		"video":    reqData.Video,
		"duration": reqData.Duration,
		"resource": reqData.Resource,
	}
	if err := db.Model(&lesson).Updates(updates).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to update lesson")
	}

	return middleware.SuccessResponse(c, nil)
}
