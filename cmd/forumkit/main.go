package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	authmodule "github.com/dmitrymomot/forumkit/modules/auth"
	"github.com/dmitrymomot/forumkit/pkg/auth"
	"github.com/dmitrymomot/forumkit/pkg/browser"
	"github.com/dmitrymomot/forumkit/pkg/config"
	"github.com/dmitrymomot/forumkit/pkg/cookie"
	"github.com/dmitrymomot/forumkit/pkg/crypto"
	"github.com/dmitrymomot/forumkit/pkg/httpserver"
	"github.com/dmitrymomot/forumkit/pkg/logger"
	"github.com/dmitrymomot/forumkit/pkg/pg"
	"github.com/dmitrymomot/forumkit/pkg/redis"
	"github.com/dmitrymomot/forumkit/pkg/session"
)

type appConfig struct {
	// SessionStore selects the session backend: memory, redis, or postgres
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`

	// Environment switches log formatting between development and production
	Environment string `env:"APP_ENV" envDefault:"development"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var appCfg appConfig
	config.MustLoad(&appCfg)

	logOpt := logger.WithDevelopment("forumkit")
	if appCfg.Environment == "production" {
		logOpt = logger.WithProduction("forumkit")
	}
	log := logger.New(logOpt)
	logger.SetAsDefault(log)

	var sessionCfg session.Config
	config.MustLoad(&sessionCfg)
	var authCfg auth.Config
	config.MustLoad(&authCfg)
	var cookieCfg cookie.Config
	config.MustLoad(&cookieCfg)
	var serverCfg httpserver.Config
	config.MustLoad(&serverCfg)

	engine := crypto.NewEngine()
	provider := browser.NewProvider()
	cookies := cookie.NewFromConfig(cookieCfg)

	var (
		backend session.Backend
		users   auth.UserStore
		checks  []func(context.Context) error
	)
	switch appCfg.SessionStore {
	case "postgres":
		var pgCfg pg.Config
		config.MustLoad(&pgCfg)
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		backend = session.NewPGBackend(pool)
		users = auth.NewPGStore(pool)
		checks = append(checks, pg.Healthcheck(pool))
	case "redis":
		var redisCfg redis.Config
		config.MustLoad(&redisCfg)
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		backend = session.NewRedisBackend(client, "", sessionCfg.TTL)
		users = auth.NewMemoryStore()
		checks = append(checks, redis.Healthcheck(client))
		log.Warn("redis session store selected; user records stay in memory")
	default:
		backend = session.NewMemoryBackend()
		users = auth.NewMemoryStore()
	}

	sessions := session.New(
		session.NewStore(backend, engine, sessionCfg.Encrypt),
		provider,
		session.WithConfig(sessionCfg),
		session.WithCookieManager(cookies),
	)
	controller := auth.NewController(engine, sessions, provider, users, cookies,
		auth.WithConfig(authCfg),
		auth.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(browser.Middleware(provider))
	r.Get("/health", httpserver.HealthCheckHandler(log))
	r.Get("/ready", httpserver.HealthCheckHandler(log, checks...))
	r.Mount("/auth", authmodule.NewService(controller, log).Handle())
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	return httpserver.New(serverCfg, log).Run(ctx, r)
}
