package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/organic-orders/internal/application/auth"
	apphttp "github.com/jhoicas/organic-orders/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/organic-orders/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "organic-orders-test"
	testPasscode  = "organic@123"
)

func testGate() *auth.AdminGate {
	return auth.NewAdminGate(auth.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer})
}

// buildTestApp construye una aplicación Fiber mínima con AdminMiddleware y un handler dummy.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AdminMiddleware(testGate()),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func adminToken(t *testing.T) string {
	t.Helper()
	resp, err := testGate().Unlock(testPasscode, testPasscode)
	require.NoError(t, err)
	return "Bearer " + resp.Token
}

func doGet(t *testing.T, app *fiber.App, authHeader string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// AdminMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminMiddleware_TokenValido(t *testing.T) {
	status, body := doGet(t, buildTestApp(), adminToken(t))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["ok"])
}

func TestAdminMiddleware_SinHeader(t *testing.T) {
	status, body := doGet(t, buildTestApp(), "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAdminMiddleware_FormatoInvalido(t *testing.T) {
	for _, h := range []string{"Token abc", "Bearer", "abc"} {
		status, body := doGet(t, buildTestApp(), h)
		assert.Equal(t, fiber.StatusUnauthorized, status, h)
		assert.Equal(t, "INVALID_TOKEN", body["code"], h)
	}
}

func TestAdminMiddleware_TokenVacio(t *testing.T) {
	status, body := doGet(t, buildTestApp(), "Bearer   ")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAdminMiddleware_FirmaAjena(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", auth.AdminSubject, pkgjwt.RoleAdmin, testIssuer, 60)
	require.NoError(t, err)
	status, body := doGet(t, buildTestApp(), "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAdminMiddleware_RolDistinto(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, auth.AdminSubject, "viewer", testIssuer, 60)
	require.NoError(t, err)
	status, _ := doGet(t, buildTestApp(), "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
