package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	authmw "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

const resetAck = "if that email is registered, a reset link is on its way"

type AuthHTTP struct {
	Sessions     *service.SessionService
	Resets       *service.ResetService
	CookieSecure bool
}

func (h *AuthHTTP) startSession(c echo.Context, code int, sess *service.Session) error {
	c.SetCookie(sessionCookie(sess.Token, sess.ExpiresAt, h.CookieSecure))
	return c.JSON(code, transport.NewAccountResponse(sess.Account))
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		logging.FromContext(ctx).Warn("signup_error", "handler", "auth_signup", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	sess, err := h.Sessions.Signup(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return toHTTP(err)
	}
	return h.startSession(c, http.StatusCreated, sess)
}

func (h *AuthHTTP) Signin(c echo.Context) error {
	ctx := c.Request().Context()
	var req transport.SigninRequest
	if err := c.Bind(&req); err != nil {
		logging.FromContext(ctx).Warn("signin_error", "handler", "auth_signin", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	sess, err := h.Sessions.Signin(ctx, req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password look the same to the client.
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password").SetInternal(err)
		}
		return toHTTP(err)
	}
	return h.startSession(c, http.StatusOK, sess)
}

func (h *AuthHTTP) Signout(c echo.Context) error {
	h.Sessions.Signout(c.Request().Context(), authmw.Principal(c))
	c.SetCookie(clearSessionCookie(h.CookieSecure))
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Goodbye!"})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	acc, err := h.Sessions.Me(c.Request().Context(), authmw.Principal(c))
	if err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, transport.NewAccountResponse(acc))
}

func (h *AuthHTTP) RequestReset(c echo.Context) error {
	ctx := c.Request().Context()
	var req transport.ResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.Resets.Request(ctx, req.Email); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: resetAck})
}

func (h *AuthHTTP) ValidateReset(c echo.Context) error {
	if _, err := h.Resets.Validate(c.Request().Context(), c.Param("token")); err != nil {
		return toHTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true})
}

func (h *AuthHTTP) ConsumeReset(c echo.Context) error {
	var req transport.ResetConsumeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	sess, err := h.Resets.Consume(c.Request().Context(), c.Param("token"), req.Password, req.ConfirmPassword)
	if err != nil {
		return toHTTP(err)
	}
	return h.startSession(c, http.StatusOK, sess)
}
