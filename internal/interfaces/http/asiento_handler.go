package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contabilizador/internal/application/accounting"
	"github.com/jhoicas/contabilizador/internal/application/dto"
	"github.com/jhoicas/contabilizador/internal/domain"
	"github.com/jhoicas/contabilizador/pkg/logger"
)

// AsientoHandler maneja la construcción, validación y exportación de asientos.
type AsientoHandler struct {
	uc  *accounting.AsientoUseCase
	log *logger.Logger
}

// NewAsientoHandler construye el handler.
func NewAsientoHandler(uc *accounting.AsientoUseCase, log *logger.Logger) *AsientoHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AsientoHandler{uc: uc, log: log.Component("http")}
}

// Create construye el asiento de una factura extraída.
// POST /api/asientos
func (h *AsientoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAsientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Contabilizar(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Validate revisa balance y cuentas de un asiento editado.
// POST /api/asientos/validar
func (h *AsientoHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidarAsientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Validar(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Comprobante construye el asiento y responde el comprobante contable en PDF.
// POST /api/asientos/comprobante
func (h *AsientoHandler) Comprobante(c *fiber.Ctx) error {
	var in dto.CreateAsientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.uc.Comprobante(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante.pdf"`)
	return c.Send(doc)
}

func (h *AsientoHandler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Str("user_id", GetUserID(c)).Msg("error procesando asiento")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
