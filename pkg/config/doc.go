// Package config loads typed configuration structs from environment
// variables, with an optional .env file picked up automatically on first
// use. Each configuration type is parsed once per process and cached.
//
// # Usage
//
//	type SessionConfig struct {
//	    CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"is"`
//	    TTL        time.Duration `env:"SESSION_TTL" envDefault:"1h"`
//	}
//
//	var cfg SessionConfig
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
package config
