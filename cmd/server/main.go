// @title           Law Office API
// @version         1.0
// @description     Backend for a small law office dashboard: clients, court cases with timelines and file attachments, appointments, consultations, a service catalog, notifications, and dashboard statistics.
// @BasePath        /api
// @schemes         http
package main

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/internal/appointments"
	"github.com/qzlaw/office-backend/internal/cases"
	"github.com/qzlaw/office-backend/internal/clients"
	"github.com/qzlaw/office-backend/internal/consultations"
	"github.com/qzlaw/office-backend/internal/files"
	"github.com/qzlaw/office-backend/internal/notifications"
	"github.com/qzlaw/office-backend/internal/seed"
	"github.com/qzlaw/office-backend/internal/services"
	"github.com/qzlaw/office-backend/internal/stats"
	"github.com/qzlaw/office-backend/internal/storage"
	"github.com/qzlaw/office-backend/internal/timeline"
	"github.com/qzlaw/office-backend/pkg/config"
	"github.com/qzlaw/office-backend/pkg/database"
	"github.com/qzlaw/office-backend/pkg/models"
	"github.com/qzlaw/office-backend/pkg/monitoring"
)

// errorHandler keeps every error body in the same {"error": "..."} shape
// the handlers use, including panics surfaced by the recover middleware.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(models.ErrorResponse{Error: msg})
}

// optionsOK pins the OPTIONS contract: always 200 with an empty body.
// It wraps the rest of the chain so the cors middleware still writes its
// headers, then overrides the 204 preflight answer and the 405 a routeless
// plain OPTIONS would produce.
func optionsOK() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodOptions {
			return c.Next()
		}
		_ = c.Next()
		c.Response().ResetBody()
		c.Status(fiber.StatusOK)
		return nil
	}
}

// newApp wires middleware and routes onto a Fiber app. Split from main so
// the HTTP surface can be exercised end to end in tests.
func newApp(cfg *config.Config, db *gorm.DB, store storage.Provider) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(optionsOK())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Use(monitoring.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })
	app.Get("/metrics", adaptor.HTTPHandler(monitoring.Handler()))
	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")

	clientH := clients.NewHandler(db)
	api.Get("/clients", clientH.Get)
	api.Post("/clients", clientH.Create)
	api.Put("/clients", clientH.Update)
	api.Delete("/clients", clientH.Delete)

	caseH := cases.NewHandler(db, store, cfg.CaseNumberPrefix)
	api.Get("/cases", caseH.Get)
	api.Post("/cases", caseH.Create)
	api.Put("/cases", caseH.Update)
	api.Delete("/cases", caseH.Delete)

	timelineH := timeline.NewHandler(db)
	api.Get("/timeline", timelineH.List)
	api.Post("/timeline", timelineH.Add)
	api.Delete("/timeline", timelineH.Delete)

	fileH := files.NewHandler(db, store)
	api.Get("/upload", fileH.List)
	api.Post("/upload", fileH.Upload)
	api.Delete("/upload", fileH.Delete)

	appointmentH := appointments.NewHandler(db)
	api.Get("/appointments", appointmentH.Get)
	api.Post("/appointments", appointmentH.Create)
	api.Put("/appointments", appointmentH.Update)
	api.Delete("/appointments", appointmentH.Delete)

	consultationH := consultations.NewHandler(db)
	api.Get("/consultations", consultationH.Get)
	api.Post("/consultations", consultationH.Create)
	api.Put("/consultations", consultationH.Update)
	api.Delete("/consultations", consultationH.Delete)

	serviceH := services.NewHandler(db)
	api.Get("/services", serviceH.Get)
	api.Post("/services", serviceH.Create)
	api.Put("/services", serviceH.Update)
	api.Delete("/services", serviceH.Delete)

	notificationH := notifications.NewHandler(db)
	api.Get("/notifications", notificationH.Get)
	api.Post("/notifications", notificationH.Create)
	api.Put("/notifications", notificationH.Update)
	api.Delete("/notifications", notificationH.Delete)

	statsH := stats.NewHandler(db)
	api.Get("/stats", statsH.Get)

	seedH := seed.NewHandler(db)
	api.Post("/seed", seedH.Post)

	return app
}

func main() {
	cfg := config.Load()

	db := database.Init(cfg)
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatal("migration failed:", err)
	}

	store := storage.Init(cfg)
	monitoring.Init()

	app := newApp(cfg, db, store)

	log.Println("Server running on :" + cfg.ServerPort)
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
