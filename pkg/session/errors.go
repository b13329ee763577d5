package session

import "errors"

var (
	// ErrStorage indicates a backend failure. Never used for absent rows;
	// absence is not an error for any store operation.
	ErrStorage = errors.New("session.storage_failed")

	// ErrEncryption indicates a payload could not be sealed for storage
	ErrEncryption = errors.New("session.encryption_failed")

	// ErrNoTransport indicates no transport is configured
	ErrNoTransport = errors.New("session.no_transport")

	// ErrRandomSource indicates identifier generation failed
	ErrRandomSource = errors.New("session.random_source_failed")
)
