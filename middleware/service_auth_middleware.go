package middleware

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ServiceAuth validates the X-Service-Token header carried by
// service-to-service calls. The token is an HMAC-signed JWT; an empty
// secret disables the check entirely.
func ServiceAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				return next(c)
			}

			tokenString := c.Request().Header.Get("X-Service-Token")
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Service token required")
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid service token")
			}

			return next(c)
		}
	}
}
