package pkgpebble

import (
	"errors"
	"testing"
	"time"

	"github.com/cockroachdb/pebble"
)

func newTestDB(t *testing.T, dir string) *DB {
	t.Helper()
	db, err := Open(Options{
		DataDir:       dir,
		Fsync:         FsyncModeInterval,
		FsyncInterval: 2 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

func TestCRUD(t *testing.T) {
	db := newTestDB(t, t.TempDir())
	t.Cleanup(func() { _ = db.Close() })

	key := []byte("k1")
	if err := db.Set(key, []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := db.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v1" {
		t.Fatalf("got %q want %q", got, "v1")
	}

	if err := db.Set(key, []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := db.Get(key); string(got) != "v2" {
		t.Fatalf("got %q want %q", got, "v2")
	}

	if _, err := db.Get([]byte("missing")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteOptionsFollowFsyncMode(t *testing.T) {
	cases := []struct {
		mode FsyncMode
		want *pebble.WriteOptions
	}{
		{FsyncModeAlways, pebble.Sync},
		{FsyncModeInterval, pebble.Sync},
		{FsyncModeNever, pebble.NoSync},
	}

	for _, tc := range cases {
		db, err := Open(Options{DataDir: t.TempDir(), Fsync: tc.mode, FsyncInterval: time.Millisecond})
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		got := db.writeOptions()
		_ = db.Close()
		if got != tc.want {
			t.Fatalf("mode %d: expected sync=%v, got sync=%v", tc.mode, tc.want.Sync, got.Sync)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	db := newTestDB(t, dir)
	if err := db.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db = newTestDB(t, dir)
	t.Cleanup(func() { _ = db.Close() })

	got, err := db.Get([]byte("k"))
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if string(got) != "v" {
		t.Fatalf("got %q want %q", got, "v")
	}
}

func TestOpenRequiresDataDir(t *testing.T) {
	if _, err := Open(Options{}); err == nil {
		t.Fatalf("expected error for empty DataDir")
	}
}

func TestParseFsyncMode(t *testing.T) {
	cases := map[string]FsyncMode{
		"":         FsyncModeAlways,
		"always":   FsyncModeAlways,
		"interval": FsyncModeInterval,
		"never":    FsyncModeNever,
	}
	for in, want := range cases {
		got, err := ParseFsyncMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseFsyncMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFsyncMode("sometimes"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestCloseNil(t *testing.T) {
	var db *DB
	if err := db.Close(); err != nil {
		t.Fatalf("close nil: %v", err)
	}
}
