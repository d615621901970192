package courseRoutes

import (
	controllers "edume/controllers/course"
	"edume/middleware"
	validators "edume/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog browsing, authoring and progression routes
func SetupCourseRoutes(app *fiber.App) {
	// Catalog
	app.Get("/subjects/", middleware.JWTMiddleware, controllers.GetAllSubjects)
	app.Get("/", middleware.JWTMiddleware, controllers.GetAllCourses)
	app.Get("/my/", middleware.JWTMiddleware, controllers.MyCourses)
	app.Get("/course/:id/", middleware.JWTMiddleware, controllers.GetOneCourse)

	// Modules and lessons
	app.Get("/course/:course_id/modules/", middleware.JWTMiddleware, controllers.GetCourseModules)
	app.Get("/course/:course_id/modules/module/:module_id/", middleware.JWTMiddleware, controllers.GetCourseModule)
	app.Get("/course/:course_id/modules/module/:module_id/lessons/", middleware.JWTMiddleware, controllers.GetModuleLessons)
	app.Get("/course/:course_id/modules/module/:module_id/lessons/lesson/:lesson_id/", middleware.JWTMiddleware, controllers.GetModuleLesson)

	// Progression
	app.Post("/end/", middleware.JWTMiddleware, validators.EndLesson(), controllers.EndLesson)

	// Authoring
	app.Post("/create/", middleware.JWTMiddleware, validators.CreateCourse(), controllers.CreateCourse)
	app.Post("/course/:id/update/", middleware.JWTMiddleware, validators.CreateCourse(), controllers.UpdateCourse)
	app.Post("/course/:course_id/modules/add/", middleware.JWTMiddleware, validators.AddModule(), controllers.AddModule)
	app.Post("/course/:course_id/modules/module/:module_id/lessons/add/", middleware.JWTMiddleware, validators.Lesson(), controllers.AddLesson)
	app.Post("/course/:course_id/modules/module/:module_id/lessons/lesson/:lesson_id/edit/", middleware.JWTMiddleware, validators.Lesson(), controllers.EditLesson)
	app.Post("/course/:course_id/modules/module/:module_id/create_test/", middleware.JWTMiddleware, validators.CreateTest(), controllers.CreateTest)
}
