package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/telewave/vpnbot/app/controllers"
	"github.com/telewave/vpnbot/internal/pkg/cache"
	"github.com/telewave/vpnbot/internal/pkg/database"
	"github.com/telewave/vpnbot/internal/pkg/env"
	"github.com/telewave/vpnbot/internal/pkg/payment"
	"github.com/telewave/vpnbot/internal/pkg/router"
	"github.com/telewave/vpnbot/internal/pkg/subscription"
	"github.com/telewave/vpnbot/internal/pkg/yookassa"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%d", env.GetEnv("APP_HOST", "localhost"), env.GetEnvInt("APP_PORT", 4000)))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	notifier, err := subscription.NewTelegramNotifierFromEnv()
	if err != nil {
		log.Fatalf("Failed to connect to the Bot API: %v", err)
	}
	// After checkout the provider redirects the user back into the chat.
	returnURL := "https://t.me/" + notifier.BotUsername()

	subs := subscription.NewServiceFromDB(database.GetDB(), notifier)
	api := yookassa.NewClientFromEnv()
	gateway := payment.NewGatewayFromDB(
		database.GetDB(),
		api,
		subs,
		env.GetEnv("SHOP_EMAIL", ""),
		returnURL,
	)
	log.Printf("YooKassa payment gateway initialized.")

	app := fiber.New(fiber.Config{
		AppName: "vpnbot",
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: env.IsDev()}), logger.New())

	controller := controllers.NewPaymentController(gateway, cache.NewStore())
	router.Setup(app, router.NewPaymentRouter(controller))

	return app
}
