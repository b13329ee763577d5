package auth

import "errors"

var (
	// ErrUserExists is returned when registration targets a taken username
	ErrUserExists = errors.New("auth.user_exists")

	// ErrStorage indicates a user store failure. Never used for absent
	// users; absence is an ordinary authentication failure.
	ErrStorage = errors.New("auth.storage_failed")

	// ErrRandomSource indicates token or lookup generation failed
	ErrRandomSource = errors.New("auth.random_source_failed")

	// ErrPasswordHash indicates a password record could not be produced
	ErrPasswordHash = errors.New("auth.password_hash_failed")
)
