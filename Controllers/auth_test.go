package Controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Wander/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Models.User{}, &Models.Trip{}, &Models.DayTrip{}, &Models.Activity{}))
	Models.DB = db
}

func authApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/signup", Register)
	app.Post("/api/login", Login)
	app.Get("/api/validate-token", ValidateToken)
	app.Post("/api/logout", Logout)
	return app
}

func request(t *testing.T, app *fiber.App, method, path string, payload any, cookies ...*http.Cookie) (int, []byte) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.Bytes()
}

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	app := authApp()

	status, body := request(t, app, "POST", "/api/signup", fiber.Map{
		"email":    "traveler@example.com",
		"password": "supersecret",
		"name":     "Traveler",
	})
	require.Equal(t, fiber.StatusCreated, status, string(body))

	status, body = request(t, app, "POST", "/api/login", fiber.Map{
		"email":    "traveler@example.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusOK, status, string(body))

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out["access_token"])
	assert.Equal(t, "bearer", out["token_type"])
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	setupTestDB(t)

	status, body := request(t, authApp(), "POST", "/api/signup", fiber.Map{
		"email":    "traveler@example.com",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusBadRequest, status, string(body))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	setupTestDB(t)
	app := authApp()

	payload := fiber.Map{"email": "dup@example.com", "password": "supersecret"}
	status, _ := request(t, app, "POST", "/api/signup", payload)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = request(t, app, "POST", "/api/signup", payload)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestLoginWrongPasswordIsGeneric(t *testing.T) {
	setupTestDB(t)
	app := authApp()

	request(t, app, "POST", "/api/signup", fiber.Map{"email": "u@example.com", "password": "supersecret"})

	status, body := request(t, app, "POST", "/api/login", fiber.Map{"email": "u@example.com", "password": "wrongpass"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Invalid email or password", out["error"])

	// Unknown email gets the identical message.
	status, body = request(t, app, "POST", "/api/login", fiber.Map{"email": "ghost@example.com", "password": "whatever"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Invalid email or password", out["error"])
}

func TestValidateTokenWithoutCookie(t *testing.T) {
	setupTestDB(t)

	status, _ := request(t, authApp(), "GET", "/api/validate-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
