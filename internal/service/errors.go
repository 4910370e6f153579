package service

import "errors"

// Domain error taxonomy. The HTTP layer matches these with errors.Is
// and maps everything unmatched to a generic 500 without leaking the
// underlying store failure.
var (
	ErrValidation         = errors.New("validation")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
