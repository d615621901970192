package main

import (
	"edume/config"
	"edume/database"
	authRoutes "edume/routers/authRoutes"
	billingRoutes "edume/routers/billingRoutes"
	courseRoutes "edume/routers/courseRoutes"
	ratingRoutes "edume/routers/ratingRoutes"
	userRoutes "edume/routers/userRoutes"
	"edume/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	billingRoutes.SetupBillingRoutes(app)
	ratingRoutes.SetupRatingRoutes(app)

	utils.InitializeScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
