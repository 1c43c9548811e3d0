package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rsmanito/expense-cards/config"
	"github.com/rsmanito/expense-cards/service"
	"github.com/stretchr/testify/assert"
)

var jwtSigningKey = config.Load().JWT_SIGNING_KEY

func createJWTToken(signingKey string, expireIn time.Duration, subject string) string {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(expireIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, _ := token.SignedString([]byte(signingKey))
	return signedToken
}

func setupTestServer() *fiber.App {
	app := fiber.New()
	app.Use(JWTMiddleware(jwtSigningKey))
	app.Get("/test", func(c fiber.Ctx) error {
		userId, _ := service.UserIDFromContext(c.Context())
		return c.JSON(fiber.Map{"userId": userId})
	})
	return app
}

func TestJWT_MissingToken(t *testing.T) {
	app := setupTestServer()
	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var resBody map[string]string
	json.NewDecoder(resp.Body).Decode(&resBody)
	assert.Equal(t, "missing token", resBody["detail"])
}

func TestJWT_BadTokenFormat(t *testing.T) {
	app := setupTestServer()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "InvalidToken") // Bad format

	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var resBody map[string]string
	json.NewDecoder(resp.Body).Decode(&resBody)
	assert.Equal(t, "bad token format", resBody["detail"])
}

func TestJWT_ExpiredToken(t *testing.T) {
	app := setupTestServer()
	userID := uuid.New()
	expiredToken := createJWTToken(jwtSigningKey, -1*time.Hour, userID.String()) // Expired

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+expiredToken)

	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var resBody map[string]string
	json.NewDecoder(resp.Body).Decode(&resBody)
	assert.Equal(t, "expired token", resBody["detail"])
}

func TestJWT_WrongSigningKey(t *testing.T) {
	app := setupTestServer()
	forged := createJWTToken("not-the-key", time.Hour, uuid.NewString())

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+forged)

	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJWT_ValidToken(t *testing.T) {
	app := setupTestServer()
	userID := uuid.New()
	validToken := createJWTToken(jwtSigningKey, 1*time.Hour, userID.String()) // Valid

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)

	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var resBody map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&resBody)

	assert.Equal(t, userID.String(), resBody["userId"])
}

func TestJWT_RefreshTokenRejected(t *testing.T) {
	app := setupTestServer()
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(30 * 24 * time.Hour).Unix(),
		"typ": "refresh",
	})
	signed, err := refresh.SignedString([]byte(jwtSigningKey))
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var resBody map[string]string
	json.NewDecoder(resp.Body).Decode(&resBody)
	assert.Equal(t, "invalid token", resBody["detail"])
}
