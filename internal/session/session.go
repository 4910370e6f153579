// Package session holds server-side login state. The client only ever
// carries an opaque identifier in a cookie; everything the identifier
// maps to lives in the store and disappears on logout or after TTL.
package session

import (
	"context"
	"errors"
	"time"
)

const (
	CookieName = "session_id"
	TTL        = 24 * time.Hour
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

type Store interface {
	Create(ctx context.Context, s Session) (string, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
