package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contabilizador/internal/application/accounting"
	"github.com/jhoicas/contabilizador/internal/application/dto"
	"github.com/jhoicas/contabilizador/pkg/jwt"
	"github.com/jhoicas/contabilizador/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AsientoUC   *accounting.AsientoUseCase
	ServiceName string
	JWTSecret   string // vacío: API sin autenticación
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName})
	})

	api := app.Group("/api")
	allowAll := func(c *fiber.Ctx) error { return c.Next() }
	contador, lector := allowAll, allowAll
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret))
		contador = RequireRole(jwt.RoleContador)
		lector = RequireRole(jwt.RoleContador, jwt.RoleAuditor)
	}

	asientos := api.Group("/asientos")
	h := NewAsientoHandler(deps.AsientoUC, deps.Log)
	asientos.Post("/", contador, h.Create)
	asientos.Post("/validar", lector, h.Validate)
	asientos.Post("/comprobante", contador, h.Comprobante)
}
