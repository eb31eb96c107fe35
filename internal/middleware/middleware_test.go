package middleware

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BarenJ/AplikasiPanti/internal/model"
	"github.com/BarenJ/AplikasiPanti/internal/policy"
	"github.com/BarenJ/AplikasiPanti/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newApp(t *testing.T) (*fiber.App, *session.Manager) {
	t.Helper()
	manager := session.NewManager("rahasia-test", time.Hour, session.NewMemoryStore())
	app := fiber.New()
	app.Get("/kamar", Auth(manager), Permission(policy.Rooms, policy.Read), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": UserID(c), "role": Role(c), "jti": Claims(c).ID})
	})
	app.Delete("/kamar", Auth(manager), Permission(policy.Rooms, policy.Delete), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app, manager
}

func call(t *testing.T, app *fiber.App, method, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, "/kamar", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthRequiresToken(t *testing.T) {
	app, _ := newApp(t)

	status, body := call(t, app, "GET", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Token tidak ditemukan", gjson.Get(body, "error").String())

	status, _ = call(t, app, "GET", "bukan-token")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthSetsLocals(t *testing.T) {
	app, manager := newApp(t)
	token, _, err := manager.Issue(&model.User{ID: 7, Username: "perawat1", Role: model.RoleNurse})
	require.NoError(t, err)

	status, body := call(t, app, "GET", token)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, int64(7), gjson.Get(body, "user_id").Int())
	assert.Equal(t, model.RoleNurse, gjson.Get(body, "role").String())
	assert.NotEmpty(t, gjson.Get(body, "jti").String())
}

func TestAuthRejectsRevokedToken(t *testing.T) {
	app, manager := newApp(t)
	user := &model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}
	token, _, err := manager.Issue(user)
	require.NoError(t, err)

	claims, err := manager.Verify(context.Background(), token)
	require.NoError(t, err)
	require.NoError(t, manager.Revoke(context.Background(), claims))

	status, _ := call(t, app, "GET", token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestPermissionForbidsStaffDelete(t *testing.T) {
	app, manager := newApp(t)
	staff, _, err := manager.Issue(&model.User{ID: 2, Username: "staff", Role: model.RoleStaff})
	require.NoError(t, err)
	admin, _, err := manager.Issue(&model.User{ID: 1, Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)

	status, body := call(t, app, "DELETE", staff)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, gjson.Get(body, "error").String(), "Akses ditolak")

	status, _ = call(t, app, "DELETE", admin)
	assert.Equal(t, fiber.StatusNoContent, status)
}
