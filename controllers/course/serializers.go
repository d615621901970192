package controllers

import (
	"edume/models"
	"edume/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Response assembly mirrors the API payloads the mobile client depends on:
// list views carry counts, detail views expand modules and lessons with the
// caller's unlock state.

func authorJSON(db *gorm.DB, authorID uint) fiber.Map {
	var author models.User
	if err := db.First(&author, authorID).Error; err != nil {
		return nil
	}
	return fiber.Map{
		"id":          author.ID,
		"phone":       author.Phone,
		"first_name":  author.FirstName,
		"last_name":   author.LastName,
		"middle_name": author.MiddleName,
		"image":       author.Image,
	}
}

func subjectName(db *gorm.DB, subjectID *uint) interface{} {
	if subjectID == nil {
		return nil
	}
	var subject models.Subject
	if err := db.First(&subject, *subjectID).Error; err != nil {
		return nil
	}
	return subject.Name
}

func isCourseStudent(db *gorm.DB, courseID, userID uint) bool {
	var count int64
	db.Model(&models.CourseStudent{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count)
	return count > 0
}

func courseCounts(db *gorm.DB, courseID uint) (modules, students, lessons, quizzes, length int64) {
	db.Model(&models.Module{}).Where("course_id = ?", courseID).Count(&modules)
	db.Model(&models.CourseStudent{}).Where("course_id = ?", courseID).Count(&students)
	db.Model(&models.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&lessons)
	db.Model(&models.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ? AND lessons.type = ?", courseID, models.LessonTypeQuiz).
		Count(&quizzes)
	var total struct{ Total int64 }
	db.Model(&models.Lesson{}).
		Select("COALESCE(SUM(lessons.duration), 0) as total").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Scan(&total)
	length = total.Total
	return
}

// courseBrief is the course list payload.
func courseBrief(db *gorm.DB, course *models.Course, userID uint) fiber.Map {
	modules, students, lessons, quizzes, length := courseCounts(db, course.ID)
	return fiber.Map{
		"id":            course.ID,
		"name":          course.Name,
		"author":        authorJSON(db, course.AuthorID),
		"image":         course.Image,
		"subject":       subjectName(db, course.SubjectID),
		"description":   course.Description,
		"price":         course.Price,
		"feedback":      course.Feedback,
		"count_modules": modules,
		"count_students": students,
		"count_lessons": lessons,
		"count_quizzes": quizzes,
		"length":        length,
		"is_open":       isCourseStudent(db, course.ID, userID),
	}
}

// courseDetail expands courseBrief with the module tree.
func courseDetail(db *gorm.DB, course *models.Course, userID uint) fiber.Map {
	detail := courseBrief(db, course, userID)

	var modules []models.Module
	db.Where("course_id = ?", course.ID).Order("sequence asc, id asc").Find(&modules)

	moduleList := make([]fiber.Map, 0, len(modules))
	for i := range modules {
		moduleList = append(moduleList, moduleJSON(db, &modules[i], userID))
	}
	detail["modules"] = moduleList

	var students []models.User
	db.Joins("JOIN course_students ON course_students.user_id = users.id").
		Where("course_students.course_id = ?", course.ID).
		Find(&students)
	studentList := make([]map[string]interface{}, 0, len(students))
	for i := range students {
		studentList = append(studentList, students[i].Public())
	}
	detail["students"] = studentList

	return detail
}

func moduleJSON(db *gorm.DB, module *models.Module, userID uint) fiber.Map {
	var required interface{}
	if module.RequiredID != nil {
		var req models.Module
		if err := db.First(&req, *module.RequiredID).Error; err == nil {
			required = fiber.Map{"id": req.ID, "name": req.Name}
		}
	}

	var studentCount, finisherCount, lessonCount int64
	db.Model(&models.ModuleStudent{}).Where("module_id = ?", module.ID).Count(&studentCount)
	db.Model(&models.ModuleFinisher{}).Where("module_id = ?", module.ID).Count(&finisherCount)
	db.Model(&models.Lesson{}).Where("module_id = ?", module.ID).Count(&lessonCount)

	var length struct{ Total int64 }
	db.Model(&models.Lesson{}).
		Select("COALESCE(SUM(duration), 0) as total").
		Where("module_id = ?", module.ID).
		Scan(&length)

	var lessons []models.Lesson
	db.Where("module_id = ?", module.ID).Order("id asc").Find(&lessons)
	lessonList := make([]fiber.Map, 0, len(lessons))
	for i := range lessons {
		lessonList = append(lessonList, lessonBrief(db, &lessons[i], userID))
	}

	return fiber.Map{
		"id":              module.ID,
		"name":            module.Name,
		"sequence":        module.Sequence,
		"required":        required,
		"video_length":    length.Total,
		"count_students":  studentCount,
		"count_finishers": finisherCount,
		"count_lessons":   lessonCount,
		"lessons":         lessonList,
		"is_open":         services.IsModuleOpen(db, module.ID, userID),
	}
}

// lessonBrief is the chain-entry payload inside a module.
func lessonBrief(db *gorm.DB, lesson *models.Lesson, userID uint) fiber.Map {
	return fiber.Map{
		"id":       lesson.ID,
		"name":     lesson.Name,
		"type":     lesson.Type,
		"duration": lesson.Duration,
		"quiz":     lesson.QuizID,
		"is_open":  services.IsLessonOpen(db, lesson, userID),
	}
}

// lessonDetail expands the lesson with its quiz, neighbours and finishers.
func lessonDetail(db *gorm.DB, lesson *models.Lesson, userID uint) fiber.Map {
	detail := fiber.Map{
		"id":       lesson.ID,
		"name":     lesson.Name,
		"type":     lesson.Type,
		"video":    lesson.Video,
		"duration": lesson.Duration,
		"resource": lesson.Resource,
		"is_open":  services.IsLessonOpen(db, lesson, userID),
	}

	if lesson.QuizID != nil {
		var quiz models.Quiz
		if err := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).Preload("Questions.Answers").First(&quiz, *lesson.QuizID).Error; err == nil {
			questions := make([]map[string]interface{}, 0, len(quiz.Questions))
			for i := range quiz.Questions {
				questions = append(questions, quiz.Questions[i].JSON())
			}
			detail["quiz"] = fiber.Map{
				"name":          quiz.Name,
				"passing_score": quiz.PassingScore,
				"questions":     questions,
			}
		}
	} else {
		detail["quiz"] = nil
	}

	neighbour := func(id *uint) interface{} {
		if id == nil {
			return nil
		}
		var l models.Lesson
		if err := db.First(&l, *id).Error; err != nil {
			return nil
		}
		return lessonBrief(db, &l, userID)
	}
	detail["previous"] = neighbour(lesson.PreviousID)
	detail["next"] = neighbour(lesson.NextID)

	var finishers []models.User
	db.Joins("JOIN lesson_finishers ON lesson_finishers.user_id = users.id").
		Where("lesson_finishers.lesson_id = ?", lesson.ID).
		Find(&finishers)
	finisherList := make([]map[string]interface{}, 0, len(finishers))
	for i := range finishers {
		finisherList = append(finisherList, finishers[i].Public())
	}
	detail["finishers"] = finisherList

	return detail
}
