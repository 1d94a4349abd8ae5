package server

import (
	"log"

	"prep-tool-be/internal/bootstrap"
	"prep-tool-be/internal/config"
	"prep-tool-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, imports carry whole decks inline
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Viewer-Id",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	if cfg.Tracing.Enabled {
		app.Use(otelfiber.Middleware())
	}

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	guard := serverutils.AuthMiddleware(c.AuthService.Enabled(), c.AuthService.Secret())

	api := app.Group("/api")

	// public, and registered before the guard so login never hits it
	c.AuthController.RegisterRoutes(api)

	protected := api.Group("", guard)
	c.SessionController.RegisterRoutes(protected)
	c.ImportController.RegisterRoutes(protected)
	c.ViewerStateController.RegisterRoutes(protected)
	c.RuntimeController.RegisterRoutes(protected)
	c.EditorController.RegisterRoutes(protected)

	ws := app.Group("/ws", guard)
	c.RuntimeHandler.RegisterRoutes(ws)
}
