package service

import "errors"

var (
	// ErrValidation wraps request parameter failures so the handler
	// layer can answer 400 without inspecting message text.
	ErrValidation = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)
