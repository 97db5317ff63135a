package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// invalidTokenBody is the literal body older API clients expect on any
// authentication failure, serialized as a JSON string.
const invalidTokenBody = "Invalid JWT Token"

// Claims extends jwt.RegisteredClaims with the username claim.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWT returns an Echo middleware that validates the Authorization header
// token using the provided signing key. The header is expected as
// "Bearer <token>"; the token is everything after the first space.
// Missing header, bad signature, malformed token and expiry all map to
// the same 401 response.
func JWT(key []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, invalidTokenBody)
			}

			var raw string
			if parts := strings.SplitN(header, " ", 2); len(parts) == 2 {
				raw = parts[1]
			}

			claims := &Claims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !tkn.Valid {
				return c.JSON(http.StatusUnauthorized, invalidTokenBody)
			}

			c.Set("username", claims.Username)
			return next(c)
		}
	}
}
