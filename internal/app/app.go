package app

import (
	"context"
	"net/http"
	"time"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgconfig"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkglog"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgrouter"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgroutine"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkguid"
)

const defaultShutdownTimeout = 10 * time.Second

// closer releases one resource on shutdown.
type closer struct {
	name string
	fn   func(context.Context) error
}

// App owns the id service's resources from startup to shutdown.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	config pkgconfig.Config

	correlationID pkguid.StringID
	goroutine     *pkgroutine.Manager

	router     *pkgrouter.Router
	httpServer *http.Server

	// closers run in reverse order of registration.
	closers []closer
}

func New() *App {
	pkglog.InitLogging()

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()

	return app
}

// ShutdownTimeout is how long Stop may take, from server.shutdown_timeout.
func (a *App) ShutdownTimeout() time.Duration {
	if d := a.config.GetDuration("server.shutdown_timeout"); d > 0 {
		return d
	}
	return defaultShutdownTimeout
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}
