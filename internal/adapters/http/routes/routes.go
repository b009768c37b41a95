package routes

import (
	"studyspace-client/internal/adapters/http/handlers"
	"studyspace-client/internal/adapters/http/middleware"
	"studyspace-client/internal/adapters/persistence/memory"
	"studyspace-client/internal/config"

	"github.com/gofiber/fiber/v2"
)

// Setup registers the stub server's routes, mirroring the remote booking
// service contract path for path.
func Setup(app *fiber.App, store *memory.Store, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(store, cfg)
	roomHandler := handlers.NewRoomHandler(store)
	bookingHandler := handlers.NewBookingHandler(store)

	authRequired := middleware.AuthMiddleware(cfg)

	app.Post("/login", authHandler.Login)
	app.Post("/register", authHandler.Register)

	app.Get("/rooms", roomHandler.Rooms)

	// Anonymous bookings are allowed, so no auth on create
	app.Post("/bookings", bookingHandler.Create)
	app.Get("/user_bookings", authRequired, bookingHandler.UserBookings)
	app.Delete("/bookings/:id", authRequired, bookingHandler.Delete)
}
