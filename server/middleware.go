package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rsmanito/expense-cards/service"
)

// JWTMiddleware rejects requests without a valid bearer token and stores
// the token subject as the request's user id.
func JWTMiddleware(signingKey string) fiber.Handler {
	return func(c fiber.Ctx) error {
		h := c.Get("Authorization")
		if h == "" {
			return detail(c, fiber.StatusUnauthorized, "missing token")
		}
		split := strings.Split(h, " ")
		if len(split) != 2 || split[0] != "Bearer" {
			return detail(c, fiber.StatusUnauthorized, "bad token format")
		}

		token, err := jwt.Parse(split[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}

			return []byte(signingKey), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return detail(c, fiber.StatusUnauthorized, "expired token")
			}
			return detail(c, fiber.StatusUnauthorized, "bad token format")
		}

		// Refresh tokens share the signing key but only /auth/refresh accepts them.
		if claims, ok := token.Claims.(jwt.MapClaims); ok && claims["typ"] == "refresh" {
			return detail(c, fiber.StatusUnauthorized, "invalid token")
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			return detail(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.SetContext(service.WithUserID(c.Context(), sub))

		return c.Next()
	}
}
