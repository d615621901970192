package billingRoutes

import (
	billingController "edume/controllers/billing"
	"edume/middleware"
	"edume/payme"
	billingValidator "edume/validators/billing"

	"github.com/gofiber/fiber/v2"
)

// SetupBillingRoutes sets up purchase, payment history and gateway callback routes
func SetupBillingRoutes(app *fiber.App) {
	app.Post("/order/", middleware.JWTMiddleware, billingValidator.Order(), billingController.OrderCourse)
	app.Post("/buy/", middleware.JWTMiddleware, billingValidator.Buy(), billingController.BuyCourse)
	app.Get("/checks/", middleware.JWTMiddleware, billingController.Checks)
	app.Get("/billing_reports/", middleware.JWTMiddleware, billingController.BillingReports)

	// Gateway callback authenticates with the merchant key, not a user token.
	app.Post("/payments/merchant/", payme.MerchantHandler)
}
