package storage

import (
	"context"
	"os"
	"path/filepath"
	"scamshield/internal/core/ports"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// exerciseKeyValue runs the shared contract every backend must satisfy.
func exerciseKeyValue(t *testing.T, kv ports.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.GetItem(ctx, "scamshield_test_missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := kv.SetItem(ctx, "scamshield_test_key", `[{"username":"alice"}]`); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	got, ok, err := kv.GetItem(ctx, "scamshield_test_key")
	if err != nil || !ok {
		t.Fatalf("GetItem after set: ok=%v err=%v", ok, err)
	}
	if got != `[{"username":"alice"}]` {
		t.Errorf("unexpected value %q", got)
	}

	if err := kv.SetItem(ctx, "scamshield_test_key", "[]"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, _, _ = kv.GetItem(ctx, "scamshield_test_key")
	if got != "[]" {
		t.Errorf("expected overwrite to replace value, got %q", got)
	}
}

func TestJSONStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	s, err := NewJSONStorage(path)
	if err != nil {
		t.Fatalf("NewJSONStorage: %v", err)
	}
	exerciseKeyValue(t, s)
}

func TestJSONStorageSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	s, err := NewJSONStorage(path)
	if err != nil {
		t.Fatalf("NewJSONStorage: %v", err)
	}
	if err := s.SetItem(context.Background(), "k", "v"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	reopened, err := NewJSONStorage(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok, _ := reopened.GetItem(context.Background(), "k")
	if !ok || v != "v" {
		t.Errorf("expected persisted value, got %q ok=%v", v, ok)
	}
}

func TestJSONStorageEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONStorage(path); err != nil {
		t.Fatalf("empty file should load as empty store: %v", err)
	}
}

func TestJSONStorageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONStorage(path); err == nil {
		t.Fatal("expected error for corrupt storage file")
	}
}

func TestJSONStorageNullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("null"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := NewJSONStorage(path)
	if err != nil {
		t.Fatalf("null file should load as empty store: %v", err)
	}
	if err := s.SetItem(context.Background(), "k", "v"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if v, ok, _ := s.GetItem(context.Background(), "k"); !ok || v != "v" {
		t.Errorf("expected stored value, got %q ok=%v", v, ok)
	}
}

func TestRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStorage(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("NewRedisStorage: %v", err)
	}
	defer s.Close()
	exerciseKeyValue(t, s)

	if ttl := mr.TTL("scamshield_test_key"); ttl != 0 {
		t.Errorf("expected no expiry, got %v", ttl)
	}
}

func TestRedisStorageUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	if _, err := NewRedisStorage(context.Background(), "redis://"+addr); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestPostgresStorage(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	s, err := NewPostgresStorage(context.Background(), dsn)
	if err != nil {
		t.Fatalf("NewPostgresStorage: %v", err)
	}
	defer s.Close()
	exerciseKeyValue(t, s)
}
