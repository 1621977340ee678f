package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgconfig"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkglog"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgrouter"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgroutine"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkguid"
	"github.com/rs/cors"
)

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	if err := pkglog.SetLevel(cfg.GetString("log.level")); err != nil {
		slog.Error("failed to set log level", "error", err)
		os.Exit(1)
	}

	a.config = cfg
	a.addCloser("Config", func(context.Context) error {
		return cfg.Close()
	})
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(100)
	a.correlationID = pkguid.NewUUID()
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.correlationID)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
