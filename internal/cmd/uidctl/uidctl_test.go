package uidctl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkguid"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRoot()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestEncodePinnedTimestamp(t *testing.T) {
	out, err := run(t, "encode", "--at", "1792238400000", "--app", "15", "--worker", "2047", "--count", "2")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	lines := strings.Fields(out)
	want := []string{"4797309299493698560", "4797309299493698561"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d ids, got %q", len(want), out)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %s, want %s", i, lines[i], want[i])
		}
	}
}

func TestEncodeNowUsesTags(t *testing.T) {
	out, err := run(t, "encode", "--app", "3", "--worker", "5", "--count", "3", "--base36")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	seen := map[string]bool{}
	for _, line := range strings.Fields(out) {
		id, err := pkguid.ParseBase36(line)
		if err != nil {
			t.Fatalf("ParseBase36(%q): %v", line, err)
		}
		parts := id.Parts()
		if parts.ApplicationTag != 3 || parts.WorkerTag != 5 {
			t.Fatalf("unexpected parts: %+v", parts)
		}
		seen[line] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 unique ids, got %q", out)
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := run(t, "encode", "--count", "0"); err == nil {
		t.Fatalf("expected error for --count 0")
	}
	if _, err := run(t, "encode", "--app", "1.5"); !errors.Is(err, pkguid.ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
	if _, err := run(t, "encode", "--at", "1000"); !errors.Is(err, pkguid.ErrTimestampOutOfEra) {
		t.Fatalf("expected ErrTimestampOutOfEra, got %v", err)
	}
	if _, err := run(t, "encode", "--at", "1792238400000", "--count", "1025"); !errors.Is(err, pkguid.ErrSequenceExhausted) {
		t.Fatalf("expected ErrSequenceExhausted, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	out, err := run(t, "decode", "4797309299466441735", "4797309299493698560")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}

	var got decoded
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := decoded{
		ID:             "4797309299466441735",
		Timestamp:      1792238400000,
		Time:           "2026-10-17T12:00:00Z",
		ApplicationTag: 3,
		WorkerTag:      5,
		Counter:        7,
	}
	if got != want {
		t.Fatalf("decoded = %+v, want %+v", got, want)
	}
}

func TestDecodeBase36RoundTrip(t *testing.T) {
	id := pkguid.ID(4797309299466441735)

	out, err := run(t, "decode", "--base36", id.Base36())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, `"id":"4797309299466441735"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := run(t, "decode", "not-a-number"); !errors.Is(err, pkguid.ErrMalformedID) {
		t.Fatalf("expected ErrMalformedID, got %v", err)
	}
	if _, err := run(t, "decode"); err == nil {
		t.Fatalf("expected error without arguments")
	}
}

func TestSync(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "fl=1\nts=1792238400.250\nvisit_scheme=https\n")
	}))
	defer srv.Close()

	out, err := run(t, "sync", "--url", srv.URL)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := strings.TrimSpace(out); got != "1792238400250 2026-10-17T12:00:00.25Z" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	if _, err := run(t, "--log-level", "loud", "decode", "1"); err == nil {
		t.Fatalf("expected error for invalid log level")
	}
}
