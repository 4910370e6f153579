package httpserver

import (
	"net/http"
	"time"

	"github.com/mpetrenko/online_store/internal/session"
)

func sessionCookie(value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredSessionCookie() *http.Cookie {
	return sessionCookie("", time.Now().Add(-1*time.Hour))
}
