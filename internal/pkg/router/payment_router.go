package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/telewave/vpnbot/app/controllers"
)

// YookassaWebhookPath is registered with the provider's notification
// settings; changing it breaks inbound callbacks.
const YookassaWebhookPath = "/webhook/yookassa"

type PaymentRouter struct {
	controller *controllers.PaymentController
}

func NewPaymentRouter(controller *controllers.PaymentController) *PaymentRouter {
	return &PaymentRouter{controller: controller}
}

func (r *PaymentRouter) InstallRouter(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	payments := app.Group("/payments")
	payments.Post("/select", r.controller.HandleSelectPlan)
	payments.Post("/", r.controller.HandleCreatePayment)

	app.Post(YookassaWebhookPath, r.controller.HandleYookassaWebhook)
}
