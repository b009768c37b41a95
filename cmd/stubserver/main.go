package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"studyspace-client/internal/adapters/http/middleware"
	"studyspace-client/internal/adapters/http/routes"
	"studyspace-client/internal/adapters/persistence/memory"
	"studyspace-client/internal/config"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Seed the in-memory store; everything resets on restart by design
	store := memory.NewStore(cfg.Stub.RoomsPerFl)

	app := fiber.New(fiber.Config{
		AppName: "Study Space stub API",
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, store, cfg)

	go gracefulShutdown(app)

	log.Printf("🚀 Stub server starting on port %s [MODE: %s]", cfg.Stub.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Stub.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down stub server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Stub server stopped gracefully")
}
