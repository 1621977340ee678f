package uid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgconfig"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgrouter"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgroutine"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkguid"
)

type fixedClock struct {
	ms int64
}

func (c fixedClock) Now() time.Time {
	return time.UnixMilli(c.ms)
}

func newConfig(t *testing.T, content string) pkgconfig.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := pkgconfig.NewViper(path)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })
	return cfg
}

func newModule(t *testing.T, cfg pkgconfig.Config, clock pkguid.Clock) (*pkgrouter.Router, func(context.Context) error) {
	t.Helper()

	router := pkgrouter.NewRouter(nil)
	closer, err := New(Dependency{
		Config:    cfg,
		Goroutine: pkgroutine.NewManager(1),
		Router:    router,
		Context:   context.Background(),
		Clock:     clock,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return router, closer
}

func post(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func TestModuleMemoryStore(t *testing.T) {
	cfg := newConfig(t, "uid:\n  application_tag: 3\n  worker_tag: 5\n  store:\n    driver: memory\n")
	router, closer := newModule(t, cfg, fixedClock{ms: 1792238400000})

	rec := post(t, router, "/ids")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "4797309299466441728") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	if err := closer(context.Background()); err != nil {
		t.Fatalf("closer: %v", err)
	}
}

func TestModuleRandomTagsWhenUnset(t *testing.T) {
	cfg := newConfig(t, "uid:\n  store:\n    driver: memory\n")
	router, closer := newModule(t, cfg, fixedClock{ms: 1792238400000})
	defer func() { _ = closer(context.Background()) }()

	if rec := post(t, router, "/ids"); rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestModulePebbleStoreRestoresFloor(t *testing.T) {
	dir := t.TempDir()
	cfg := newConfig(t, "uid:\n  application_tag: 1\n  worker_tag: 1\n  store:\n    driver: pebble\n    path: "+dir+"\n")

	router, closer := newModule(t, cfg, fixedClock{ms: 1792238400000})
	if rec := post(t, router, "/ids"); rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if err := closer(context.Background()); err != nil {
		t.Fatalf("closer: %v", err)
	}

	// restart with a clock that went backwards
	router, closer = newModule(t, cfg, fixedClock{ms: 1792238399000})
	defer func() { _ = closer(context.Background()) }()

	if rec := post(t, router, "/ids"); rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestModuleUnknownDriver(t *testing.T) {
	cfg := newConfig(t, "uid:\n  store:\n    driver: redis\n")

	_, err := New(Dependency{
		Config:    cfg,
		Goroutine: pkgroutine.NewManager(1),
		Router:    pkgrouter.NewRouter(nil),
		Context:   context.Background(),
	})
	if err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
