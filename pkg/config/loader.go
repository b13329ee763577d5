package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.RWMutex
	values = make(map[string]any)
	onces  = make(map[string]*sync.Once)

	dotenvOnce sync.Once
)

// Load parses environment variables into the provided struct based on its
// `env` tags. The first call in a process also loads a .env file when one
// exists. Each distinct type is parsed once; later calls return the cached
// value.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// A missing .env file is not an error
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	name := typeName[T]()

	mu.RLock()
	if cached, ok := values[name]; ok {
		*v = cached.(T)
		mu.RUnlock()
		return nil
	}
	mu.RUnlock()

	mu.Lock()
	once, ok := onces[name]
	if !ok {
		once = new(sync.Once)
		onces[name] = once
	}
	mu.Unlock()

	var parseErr error
	once.Do(func() {
		if err := env.Parse(v); err != nil {
			parseErr = errors.Join(ErrParsingConfig, err)
			return
		}
		mu.Lock()
		values[name] = *v
		mu.Unlock()
	})
	if parseErr != nil {
		return parseErr
	}

	mu.RLock()
	defer mu.RUnlock()
	if cached, ok := values[name]; ok {
		*v = cached.(T)
		return nil
	}

	// A previous Load of this type failed inside its sync.Once
	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics on failure. Intended for
// configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func typeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
