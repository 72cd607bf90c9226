package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-reviewer/internal/auth"
	"resume-reviewer/internal/models"
)

const testAdminEmail = "admin@example.com"

func setupAuthApp(t *testing.T) (*fiber.App, *fakeUserRepo) {
	t.Helper()

	userRepo := newFakeUserRepo()
	tokenService := auth.NewTokenService("test-secret", time.Minute)
	handler := NewAuthHandler(userRepo, tokenService, testAdminEmail)

	app := fiber.New()
	group := app.Group("/auth")
	group.Post("/register", handler.HandleRegister)
	group.Post("/login", handler.HandleLogin)
	group.Post("/logout", handler.HandleLogout)

	return app, userRepo
}

func postJSON(t *testing.T, app *fiber.App, target, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRegisterCreatesUser(t *testing.T) {
	app, userRepo := setupAuthApp(t)

	resp := postJSON(t, app, "/auth/register", `{"email": "alice@example.com", "password": "hunter2"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.True(t, created.IsActive)

	stored, err := userRepo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", stored.HashedPassword)
	assert.True(t, auth.VerifyPassword(stored.HashedPassword, "hunter2"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, userRepo := setupAuthApp(t)

	resp := postJSON(t, app, "/auth/register", `{"email": "alice@example.com", "password": "hunter2"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/register", `{"email": "alice@example.com", "password": "other"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Email already registered", body["error"])

	// The first registration is untouched.
	stored, err := userRepo.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword(stored.HashedPassword, "hunter2"))
}

func TestRegisterMissingFields(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp := postJSON(t, app, "/auth/register", `{"email": "alice@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterAdminEmailPromoted(t *testing.T) {
	app, userRepo := setupAuthApp(t)

	resp := postJSON(t, app, "/auth/register", `{"email": "admin@example.com", "password": "hunter2"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, models.RoleAdmin, created.Role)

	stored, err := userRepo.FindByEmail(testAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}

func TestLoginIssuesToken(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp := postJSON(t, app, "/auth/register", `{"email": "alice@example.com", "password": "hunter2"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", `{"email": "alice@example.com", "password": "hunter2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token models.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
}

func TestLoginBadCredentials(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp := postJSON(t, app, "/auth/register", `{"email": "alice@example.com", "password": "hunter2"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", `{"email": "alice@example.com", "password": "wrong"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", `{"email": "nobody@example.com", "password": "hunter2"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp := postJSON(t, app, "/auth/logout", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
