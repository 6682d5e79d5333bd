package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"Wander/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T, permission int) (app *fiber.App, token string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Models.User{}))
	Models.DB = db

	user := Models.User{Email: "u@example.com", Name: "U", Permission: permission}
	require.NoError(t, db.Create(&user).Error)

	claims := &jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(user.ID)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(SecretKey))
	require.NoError(t, err)

	app = fiber.New()
	app.Get("/protected", Verify(2), func(c *fiber.Ctx) error {
		u := c.Locals("user").(Models.User)
		return c.JSON(fiber.Map{"email": u.Email})
	})
	return app, token
}

func get(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestVerifyAllowsSufficientPermission(t *testing.T) {
	app, token := setupAuthTest(t, 2)
	assert.Equal(t, fiber.StatusOK, get(t, app, token))
}

func TestVerifyRejectsInsufficientPermission(t *testing.T) {
	app, token := setupAuthTest(t, 1)
	assert.Equal(t, fiber.StatusForbidden, get(t, app, token))
}

func TestVerifyRejectsMissingCookie(t *testing.T) {
	app, _ := setupAuthTest(t, 2)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, ""))
}

func TestVerifyRejectsGarbageToken(t *testing.T) {
	app, _ := setupAuthTest(t, 2)
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "not-a-token"))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	app, _ := setupAuthTest(t, 2)

	claims := &jwt.RegisteredClaims{
		Issuer:    "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(SecretKey))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, expired))
}
