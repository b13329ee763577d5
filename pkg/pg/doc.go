// Package pg provides PostgreSQL connection pooling with retry logic and
// a healthcheck helper. The forum's user records and (optionally) its
// session rows live in Postgres; this package owns nothing but the
// connection lifecycle.
package pg
