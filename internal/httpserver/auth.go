package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mpetrenko/online_store/internal/logging"
	"github.com/mpetrenko/online_store/internal/models"
	"github.com/mpetrenko/online_store/internal/service"
	"github.com/mpetrenko/online_store/internal/session"
	"github.com/mpetrenko/online_store/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func userResponse(u *models.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLoginAt,
	}
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Signup(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("signup_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrConflict):
			l.Warn("signup_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "username or email already taken")
		}
		l.Error("signup_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "user creation failed")
	}

	return c.JSON(http.StatusCreated, userResponse(user))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, sid, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	c.SetCookie(sessionCookie(sid, time.Now().Add(session.TTL)))
	return c.JSON(http.StatusOK, userResponse(user))
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	cookie, err := c.Cookie(session.CookieName)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "please log in to access this feature")
	}

	if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
		l.Error("logout_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "logout failed")
	}

	c.SetCookie(expiredSessionCookie())
	l.Info("logout_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")
	sess := CurrentSession(c)

	user, err := h.Svc.Me(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			// The account is gone; the session must not outlive it.
			if cookie, cerr := c.Cookie(session.CookieName); cerr == nil {
				_ = h.Svc.Logout(ctx, cookie.Value)
			}
			c.SetCookie(expiredSessionCookie())
			l.Warn("me_user_missing", "status", 404, "user_id", sess.UserID)
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("me_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, userResponse(user))
}
