package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mpetrenko/online_store/internal/logging"
	"github.com/mpetrenko/online_store/internal/repo"
	"github.com/mpetrenko/online_store/internal/session"
)

const sessionContextKey = "session"

type SessionMiddleware struct {
	Store session.Store
	Repo  *repo.GormRepo
}

// RequireSession is the single guard for every protected route: no
// cookie, an unknown id, or an expired entry all produce the same 401.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "please log in to access this feature")
		}

		sess, err := m.Store.Get(c.Request().Context(), cookie.Value)
		if err != nil {
			if err != session.ErrNotFound {
				logging.FromContext(c.Request().Context()).Error("session lookup failed", "error", err)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "please log in to access this feature")
		}

		c.Set(sessionContextKey, sess)
		return next(c)
	}
}

// RequireAdmin reads the role from the database rather than the session,
// so demoting an admin takes effect on their next request.
func (m *SessionMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireSession(func(c echo.Context) error {
		sess := CurrentSession(c)

		user, err := m.Repo.GetUserByID(c.Request().Context(), sess.UserID)
		if err != nil {
			if repo.IsNotFound(err) {
				return echo.NewHTTPError(http.StatusUnauthorized, "please log in to access this feature")
			}
			logging.FromContext(c.Request().Context()).Error("admin check failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		if user.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	})
}

// CurrentSession returns the session placed by RequireSession. It is
// only valid on guarded routes.
func CurrentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionContextKey).(*session.Session)
	return sess
}
