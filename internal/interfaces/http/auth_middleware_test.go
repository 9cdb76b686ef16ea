package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contabilizador/internal/application/dto"
	apphttp "github.com/jhoicas/contabilizador/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/contabilizador/pkg/jwt"
)

const (
	testJWTSecret = "secreto-de-pruebas"
	testUserID    = "00000000-0000-0000-0000-000000000001"
)

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, "contabilizador-test", 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuth_RolesYTokens(t *testing.T) {
	otroSecreto, err := pkgjwt.Generate("otro-secreto", testUserID, pkgjwt.RoleContador, "x", 60)
	require.NoError(t, err)

	cases := []struct {
		name     string
		allowed  []string
		header   string
		status   int
		wantCode string
	}{
		{"contador en ruta de contador", []string{pkgjwt.RoleContador}, bearer(t, pkgjwt.RoleContador), http.StatusOK, ""},
		{"auditor en ruta compartida", []string{pkgjwt.RoleContador, pkgjwt.RoleAuditor}, bearer(t, pkgjwt.RoleAuditor), http.StatusOK, ""},
		{"rol sin distinguir mayúsculas", []string{"CONTADOR"}, bearer(t, pkgjwt.RoleContador), http.StatusOK, ""},
		{"auditor bloqueado", []string{pkgjwt.RoleContador}, bearer(t, pkgjwt.RoleAuditor), http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{pkgjwt.RoleContador}, bearer(t, ""), http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin encabezado", []string{pkgjwt.RoleContador}, "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema Basic", []string{pkgjwt.RoleContador}, "Basic abc", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"bearer vacío", []string{pkgjwt.RoleContador}, "Bearer   ", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"token basura", []string{pkgjwt.RoleContador}, "Bearer a.b.c", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"firmado con otro secreto", []string{pkgjwt.RoleContador}, "Bearer " + otroSecreto, http.StatusUnauthorized, "INVALID_TOKEN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/protegido",
				apphttp.AuthMiddleware(testJWTSecret),
				apphttp.RequireRole(tc.allowed...),
				func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
			)

			req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.wantCode != "" {
				var body dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tc.wantCode, body.Code)
			}
		})
	}
}

func TestAuthMiddleware_ExponeUsuarioYRol(t *testing.T) {
	app := fiber.New()
	app.Get("/yo", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/yo", nil)
	req.Header.Set("Authorization", bearer(t, pkgjwt.RoleAuditor))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, pkgjwt.RoleAuditor, body["role"])
}
