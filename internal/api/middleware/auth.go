package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-service/internal/api/handler"
	"github.com/99minutos/auth-service/internal/core/ports"
)

// Auth verifies the session token and injects its claims into the context.
// The token is read from the auth-token header, falling back to
// "Authorization: Bearer <token>".
func Auth(tokens ports.TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := extractToken(c.Request())
			if err != nil {
				return err
			}

			// Parse failures wrap domain.ErrInvalidToken and render as 401.
			claims, err := tokens.Parse(raw)
			if err != nil {
				return err
			}

			c.Set(handler.CtxUserID, claims.ID)
			c.Set(handler.CtxName, claims.Name)

			return next(c)
		}
	}
}

func extractToken(r *http.Request) (string, error) {
	if tok := strings.TrimSpace(r.Header.Get(handler.AuthTokenHeader)); tok != "" {
		return tok, nil
	}

	authHeader := r.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "access denied")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
