package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"prep-tool-be/internal/bootstrap"
	"prep-tool-be/internal/config"
	"prep-tool-be/internal/server"
	"prep-tool-be/internal/tracer"
	"prep-tool-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		log.Panicf("Unable to migrate database: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 5. Start Background Services
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 6. Initialize Server
	srv := server.New(cfg, container)

	printBanner(cfg, container.AuthService.Enabled())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}

func printBanner(cfg *config.Config, authEnabled bool) {
	color.Cyan("🎤 Prep Tool backend")
	color.White("   database : %s", cfg.Database.Driver)
	if authEnabled {
		color.Green("   auth     : login required (user %s)", cfg.Auth.User)
	} else {
		color.Yellow("   auth     : disabled, viewer taken from X-Viewer-Id")
	}
	if cfg.App.RedisURL == "" {
		color.Yellow("   viewer   : in-memory (set REDIS_URL to persist)")
	} else {
		color.Green("   viewer   : redis")
	}
	if cfg.App.NatsURL != "" {
		color.Green("   events   : relayed to NATS")
	}
	if cfg.Import.Root != "" {
		color.White("   imports  : restricted to %s", cfg.Import.Root)
	}
}
