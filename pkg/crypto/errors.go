package crypto

import "errors"

var (
	// ErrDataTooLarge is returned when input exceeds the fixed encryption size limit
	ErrDataTooLarge = errors.New("crypto.data_too_large")

	// ErrUnknownAlgorithm is returned when a derivation algorithm is not in the allowed set
	ErrUnknownAlgorithm = errors.New("crypto.unknown_algorithm")

	// ErrInvalidParams is returned for non-positive round counts or key lengths
	ErrInvalidParams = errors.New("crypto.invalid_params")

	// ErrRandomSource is returned when the system randomness source fails
	ErrRandomSource = errors.New("crypto.random_source_failed")
)
