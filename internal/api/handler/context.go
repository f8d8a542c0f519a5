package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// Context keys set by the token middleware.
const (
	CtxUserID = "user_id"
	CtxName   = "name"
)

// ctxClaims extracts the token claims injected by the Auth middleware. A
// missing user id means the middleware did not run for this route.
func ctxClaims(c echo.Context) (domain.TokenClaims, error) {
	id, _ := c.Get(CtxUserID).(string)
	if id == "" {
		return domain.TokenClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	name, _ := c.Get(CtxName).(string)
	return domain.TokenClaims{ID: id, Name: name}, nil
}
