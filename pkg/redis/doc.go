// Package redis provides Redis client construction with retry logic and a
// healthcheck helper. Used by the session store's Redis backend.
package redis
