package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/contabilizador/internal/application/dto"
	"github.com/jhoicas/contabilizador/pkg/jwt"
)

const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthMiddleware exige un Bearer JWT firmado con secret y deja usuario y rol en c.Locals.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, code, msg := bearerToken(c.Get(fiber.HeaderAuthorization))
		if code != "" {
			return deny(c, fiber.StatusUnauthorized, code, msg)
		}
		userID, role, err := jwt.Parse(secret, token)
		if err != nil {
			return deny(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// bearerToken separa el token del encabezado; code no vacío indica el motivo del rechazo.
func bearerToken(header string) (token, code, msg string) {
	if header == "" {
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	scheme, rest, _ := strings.Cut(strings.TrimSpace(header), " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(rest)
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// RequireRole va después de AuthMiddleware. Sin rol responde 401; con un rol ajeno, 403.
// El contador puede todo; el auditor solo revisa asientos ya armados.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return deny(c, fiber.StatusUnauthorized, "MISSING_ROLE", "el token no incluye rol")
		}
		for _, r := range allowed {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return deny(c, fiber.StatusForbidden, "FORBIDDEN", "rol '"+role+"' sin acceso a este recurso")
	}
}

func deny(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
