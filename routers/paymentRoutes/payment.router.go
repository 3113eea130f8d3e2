package paymentRoutes

import (
	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	validators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up the course purchase routes
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment", middleware.JWTMiddleware)

	paymentGroup.Post("/course/:courseId/order", validators.CourseID(), controllers.CreatePaymentOrder)
	paymentGroup.Post("/order/:orderId/confirm", validators.OrderID(), controllers.ConfirmPayment)
	paymentGroup.Get("/my", controllers.GetMyPayments)
}
