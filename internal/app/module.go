package app

import (
	"log/slog"
	"os"

	"github.com/raise-sistemas/jsr-uid/internal/uid"
)

func (a *App) initModules() {
	if !a.config.GetBool("modules.uid.enabled") {
		slog.Warn("module uid is disabled; only health endpoints are served")
		return
	}

	closeUID, err := uid.New(uid.Dependency{
		Config:    a.config,
		Router:    a.router,
		Goroutine: a.goroutine,
		Context:   a.ctx,
	})
	if err != nil {
		slog.Error("failed to init module uid", "error", err)
		os.Exit(1)
	}
	a.addCloser("UID", closeUID)
}
