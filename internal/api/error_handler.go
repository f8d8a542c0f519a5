package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// Client-facing rejection messages.
const (
	msgEmailTaken         = "email ya está registrado"
	msgInvalidCredentials = "Usuario o password incorrecto"
)

// errorResponse reports validation, store and transport failures:
// {"error": "<message>"}.
type errorResponse struct {
	Error string `json:"error"`
}

// rejectionResponse reports business rejections:
// {"error": true, "mensaje": "<message>"}.
type rejectionResponse struct {
	Error   bool   `json:"error"`
	Mensaje string `json:"mensaje"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders every auth domain error as 400.
//   - Keeps echo's own status codes (bind failures, 401 from middleware, 404).
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: ve.Error()}
	}

	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, rejectionResponse{Error: true, Mensaje: msgEmailTaken}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, rejectionResponse{Error: true, Mensaje: msgInvalidCredentials}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{Error: "invalid token"}
	}

	var se *domain.StoreError
	if errors.As(err, &se) {
		log.Warn().
			Err(se.Err).
			Str("op", se.Op).
			Str("path", c.Path()).
			Msg("store error returned to client")
		return http.StatusBadRequest, errorResponse{Error: se.Error()}
	}

	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
