package backend

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/hashicorp/go-hclog"

	"github.com/regdesk/regdesk/config"
	"github.com/regdesk/regdesk/usecase"
)

// NewApp assembles the fiber application: public registration endpoint,
// key-gated admin surface, health probe.
func NewApp(cfg config.Config, service *usecase.Service, logger log.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(logger.Named("http")))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	handler := NewHandler(service, logger)

	api := app.Group("/api")
	api.Post("/register", handler.Register)

	admin := api.Group("/admin", AdminKeyGate(cfg.AdminKey))
	admin.Get("/registrations", handler.ListRegistrations)
	admin.Post("/team-up", handler.TeamUp)
	admin.Post("/attendance", handler.Attendance)
	admin.Get("/export", handler.Export)

	return app
}
