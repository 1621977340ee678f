package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgrouter"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkguid"
	"github.com/raise-sistemas/jsr-uid/internal/uid/store"
	"github.com/raise-sistemas/jsr-uid/internal/uid/usecase"
)

// 2026-10-17T12:00:00Z
const testNow int64 = 1792238400000

type envelope[T any] struct {
	Message string            `json:"message"`
	Data    T                 `json:"data"`
	Error   map[string]string `json:"error,omitempty"`
}

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.UnixMilli(testNow)
}

type staticTimeSource struct {
	sec float64
}

func (s staticTimeSource) UnixSeconds(ctx context.Context) (float64, error) {
	return s.sec, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	gen := pkguid.NewGenerator(fixedClock{})
	if err := gen.SetApplicationTag(15); err != nil {
		t.Fatalf("SetApplicationTag: %v", err)
	}
	if err := gen.SetWorkerTag(2047); err != nil {
		t.Fatalf("SetWorkerTag: %v", err)
	}

	uc := usecase.New(usecase.Dependency{
		Generator:  gen,
		Store:      store.NewInMemoryStore(),
		TimeSource: staticTimeSource{sec: float64(testNow+1000) / 1000},
	})

	router := pkgrouter.NewRouter(pkguid.NewUUID())
	RegisterHTTPEndpoint(router, uc)
	return router
}

func do[T any](t *testing.T, h http.Handler, method, path, body string, wantStatus int) envelope[T] {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != wantStatus {
		t.Fatalf("%s %s: status = %d, want %d (body %s)", method, path, rec.Code, wantStatus, rec.Body.String())
	}

	var env envelope[T]
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestGenerateThenDecode(t *testing.T) {
	router := newTestRouter(t)

	first := do[GenerateResponse](t, router, http.MethodPost, "/ids", "", http.StatusCreated)
	second := do[GenerateResponse](t, router, http.MethodPost, "/ids", `{"count":1}`, http.StatusCreated)

	if len(first.Data.IDs) != 1 || len(second.Data.IDs) != 1 {
		t.Fatalf("unexpected ids: %v %v", first.Data.IDs, second.Data.IDs)
	}
	if first.Data.IDs[0] != "4797309299493698560" {
		t.Fatalf("first id = %s", first.Data.IDs[0])
	}

	decoded := do[DecodeResponse](t, router, http.MethodGet, "/ids/"+second.Data.IDs[0], "", http.StatusOK)
	want := DecodeResponse{
		ID:             second.Data.IDs[0],
		Timestamp:      testNow,
		Time:           "2026-10-17T12:00:00Z",
		ApplicationTag: 15,
		WorkerTag:      2047,
		Counter:        1,
	}
	if decoded.Data != want {
		t.Fatalf("decoded = %+v, want %+v", decoded.Data, want)
	}
}

func TestGenerateBatchAndTimestamp(t *testing.T) {
	router := newTestRouter(t)

	batch := do[GenerateResponse](t, router, http.MethodPost, "/ids", `{"count":3}`, http.StatusCreated)
	if len(batch.Data.IDs) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(batch.Data.IDs))
	}

	pinned := do[GenerateResponse](t, router, http.MethodPost, "/ids", `{"timestamp":1792238400500}`, http.StatusCreated)
	parts, err := pkguid.Decode(pinned.Data.IDs[0])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if parts.Timestamp != 1792238400500 || parts.Counter != 0 {
		t.Fatalf("unexpected parts: %+v", parts)
	}
}

func TestGenerateErrors(t *testing.T) {
	router := newTestRouter(t)

	below := do[GenerateResponse](t, router, http.MethodPost, "/ids", `{"timestamp":1792238399999}`, http.StatusConflict)
	if below.Error["code"] != "ERROR_CODE_CONFLICT" {
		t.Fatalf("unexpected error: %v", below.Error)
	}

	do[GenerateResponse](t, router, http.MethodPost, "/ids", `{"count":5000}`, http.StatusUnprocessableEntity)
	do[GenerateResponse](t, router, http.MethodPost, "/ids", `{"count":`, http.StatusBadRequest)
	do[GenerateResponse](t, router, http.MethodPost, "/ids", `{"unknown":true}`, http.StatusBadRequest)
}

func TestDecodeMalformed(t *testing.T) {
	router := newTestRouter(t)

	env := do[DecodeResponse](t, router, http.MethodGet, "/ids/abc", "", http.StatusUnprocessableEntity)
	if !strings.Contains(env.Error["detail"], "malformed id") {
		t.Fatalf("unexpected detail: %q", env.Error["detail"])
	}
}

func TestStateAndSync(t *testing.T) {
	router := newTestRouter(t)

	do[GenerateResponse](t, router, http.MethodPost, "/ids", "", http.StatusCreated)

	state := do[StateResponse](t, router, http.MethodGet, "/state", "", http.StatusOK)
	if state.Data.LastTimestamp != testNow || state.Data.FloorTimestamp != testNow || state.Data.LastID != "4797309299493698560" {
		t.Fatalf("unexpected state: %+v", state.Data)
	}

	synced := do[SyncResponse](t, router, http.MethodPost, "/sync", "", http.StatusOK)
	if !synced.Data.Raised || synced.Data.FloorTimestamp != testNow+1000 {
		t.Fatalf("unexpected sync: %+v", synced.Data)
	}
	if synced.Message != "floor raised" {
		t.Fatalf("unexpected message: %q", synced.Message)
	}

	// the clock is still at testNow, now below the raised floor
	do[GenerateResponse](t, router, http.MethodPost, "/ids", "", http.StatusConflict)
}
