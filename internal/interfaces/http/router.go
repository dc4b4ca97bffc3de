package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/export"
	"github.com/jhoicas/estoque-api/internal/application/ledger"
	"github.com/jhoicas/estoque-api/internal/application/projection"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *ledger.Store
	Reports   *export.ReportUseCase
	Formatter *projection.Formatter
	Logger    *logger.Logger
	Auth      *auth.AuthUseCase // nil o sin credencial = sin /auth/login
	JWTSecret string            // vacío = /api sin autenticación
	JWTIssuer string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if deps.Auth != nil && deps.Auth.Enabled() {
		app.Post("/auth/login", NewAuthHandler(deps.Auth).Login)
	}

	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	}

	ledgerHandler := NewLedgerHandler(deps.Ledger, deps.Formatter, log.Component("ledger"))

	products := api.Group("/products")
	products.Get("/", ledgerHandler.ListProducts)
	products.Post("/", ledgerHandler.CreateProduct)
	products.Put("/:index", ledgerHandler.UpdateProduct)

	movements := api.Group("/movements")
	movements.Get("/", ledgerHandler.ListMovements)
	movements.Post("/", ledgerHandler.CreateMovement)
	movements.Delete("/:index", ledgerHandler.DeleteMovement)

	api.Get("/summary", ledgerHandler.Summary)

	exportHandler := NewExportHandler(deps.Reports, log.Component("export"))
	exports := api.Group("/export")
	exports.Get("/csv", exportHandler.CSV)
	exports.Get("/pdf", exportHandler.PDF)
}
