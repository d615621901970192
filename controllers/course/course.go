package controllers

import (
	"edume/database"
	"edume/middleware"
	"edume/models"
	"edume/services"

	"github.com/gofiber/fiber/v2"
)

// GetAllSubjects lists the subject reference data.
func GetAllSubjects(c *fiber.Ctx) error {
	var subjects []models.Subject
	if err := database.Database.Db.Find(&subjects).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to fetch subjects")
	}

	list := make([]fiber.Map, 0, len(subjects))
	for _, s := range subjects {
		list = append(list, fiber.Map{"id": s.ID, "name": s.Name})
	}

	return middleware.SuccessResponse(c, fiber.Map{"subjects": list})
}

// GetAllCourses lists courses filtered by name substring and subject.
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}
	name := c.Query("name")
	subject := c.QueryInt("subject")

	db := database.Database.Db

	query := db.Where("is_deleted = ?", false)
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if subject != 0 {
		query = query.Where("subject_id = ?", subject)
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to fetch courses")
	}

	list := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		list = append(list, courseBrief(db, &courses[i], userID))
	}

	return middleware.SuccessResponse(c, fiber.Map{"courses": list})
}

// GetOneCourse returns a course with its full module tree.
func GetOneCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"id": "Invalid course id"})
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&course).Error; err != nil {
		return middleware.NotFoundResponse(c, "id", "Course not found")
	}

	return middleware.SuccessResponse(c, fiber.Map{
		"course": courseDetail(db, &course, userID),
	})
}

// CreateCourse creates a course owned by the caller.
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Name        string `json:"name"`
		Image       string `json:"image"`
		SubjectID   *uint  `json:"subject"`
		Description string `json:"description"`
		Price       int64  `json:"price"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	db := database.Database.Db

	if reqData.SubjectID != nil {
		if err := db.First(&models.Subject{}, *reqData.SubjectID).Error; err != nil {
			return middleware.NotFoundResponse(c, "subject", "Subject not found")
		}
	}

	course := models.Course{
		AuthorID:    userID,
		Name:        reqData.Name,
		Image:       reqData.Image,
		SubjectID:   reqData.SubjectID,
		Description: reqData.Description,
		Price:       reqData.Price,
	}
	if err := db.Create(&course).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to create course")
	}

	return middleware.SuccessResponse(c, fiber.Map{"id": course.ID})
}

// UpdateCourse updates an existing course's fields.
func UpdateCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"id": "Invalid course id"})
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Name        string `json:"name"`
		Image       string `json:"image"`
		SubjectID   *uint  `json:"subject"`
		Description string `json:"description"`
		Price       int64  `json:"price"`
	})
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, map[string]string{"body": "Invalid request data"})
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&course).Error; err != nil {
		return middleware.NotFoundResponse(c, "id", "Course not found")
	}

	updates := map[string]interface{}{
		"name":        reqData.Name,
		"image":       reqData.Image,
		"subject_id":  reqData.SubjectID,
		"description": reqData.Description,
		"price":       reqData.Price,
	}
	if err := db.Model(&course).Updates(updates).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to update course")
	}

	return middleware.SuccessResponse(c, nil)
}

// MyCourses lists the caller's enrolled courses with completion percentage.
func MyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, map[string]string{"user": "Unauthorized"})
	}

	db := database.Database.Db

	var courses []models.Course
	if err := db.Joins("JOIN course_students ON course_students.course_id = courses.id").
		Where("course_students.user_id = ? AND courses.is_deleted = ?", userID, false).
		Find(&courses).Error; err != nil {
		return middleware.InternalErrorResponse(c, "Failed to fetch courses")
	}

	list := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		list = append(list, fiber.Map{
			"id":         courses[i].ID,
			"name":       courses[i].Name,
			"percentage": services.CoursePercentage(db, courses[i].ID, userID),
			"author":     authorJSON(db, courses[i].AuthorID),
		})
	}

	return middleware.SuccessResponse(c, fiber.Map{"courses": list})
}
