package handler

import "github.com/gofiber/fiber/v2"

// APIPrefix is where every route below is mounted.
const APIPrefix = "/api"

type routeRegistrar interface {
	RegisterRoutes(router fiber.Router)
}

// Mount registers the handlers under APIPrefix.
func Mount(app *fiber.App, handlers ...routeRegistrar) {
	api := app.Group(APIPrefix)
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
}
