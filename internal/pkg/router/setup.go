package router

import (
	"github.com/gofiber/fiber/v2"
)

// Router installs a group of related routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

func Setup(app *fiber.App, routers ...Router) {
	for _, r := range routers {
		r.InstallRouter(app)
	}
}
