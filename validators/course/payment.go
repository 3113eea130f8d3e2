package courseValidator

import (
	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// OrderID parses the :orderId path param and stashes it for handlers
func OrderID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID := c.Params("orderId")
		if orderID == "" || len(orderID) > 64 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid order id!", nil)
		}
		c.Locals("orderID", orderID)
		return c.Next()
	}
}

// CertificateNumber parses the :certificateNumber path param
func CertificateNumber() fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("certificateNumber")
		if number == "" || len(number) > 64 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate number!", nil)
		}
		c.Locals("certificateNumber", number)
		return c.Next()
	}
}
