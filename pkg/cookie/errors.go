package cookie

import "errors"

var (
	// ErrCookieNotFound indicates the request carries no cookie with that name
	ErrCookieNotFound = errors.New("cookie.not_found")
)
