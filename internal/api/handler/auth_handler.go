package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-service/internal/core/ports"
)

// AuthHandler exposes registration and login over HTTP. Failures are
// returned as errors and rendered by the API error handler.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  envelope{data=userResponse}
// @Failure      400   {object}  map[string]any
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, envelope{Data: userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}})
}

// Login authenticates a user and returns a session token, both in the
// auth-token header and in the body.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope{data=tokenResponse}
// @Header       200   {string}  auth-token  "Signed session token"
// @Failure      400   {object}  map[string]any
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	c.Response().Header().Set(AuthTokenHeader, res.Token)
	return c.JSON(http.StatusOK, envelope{Data: tokenResponse{Token: res.Token}})
}

// Me returns the identity carried by the caller's session token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     AuthToken
// @Success      200   {object}  envelope{data=profileResponse}
// @Failure      401   {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Data: profileResponse{ID: claims.ID, Name: claims.Name}})
}
