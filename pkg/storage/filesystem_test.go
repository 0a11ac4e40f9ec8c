package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/vendor-products/pkg/lifecycle"
	"github.com/JaimeStill/vendor-products/pkg/logging"
	"github.com/JaimeStill/vendor-products/pkg/storage"
)

func newStorage(t *testing.T, maxSize string) storage.System {
	t.Helper()

	cfg := &storage.Config{BasePath: t.TempDir(), MaxObjectSize: maxSize}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	sys, err := storage.New(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return sys
}

func TestNew_EmptyBasePath(t *testing.T) {
	if _, err := storage.New(&storage.Config{}, logging.Discard()); err == nil {
		t.Fatal("New() succeeded with empty BasePath, want error")
	}
}

func TestStart_CreatesDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "blobs")
	sys, err := storage.New(&storage.Config{BasePath: target}, logging.Discard())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	lc.WaitForStartup()

	if _, err := os.Stat(target); err != nil {
		t.Errorf("Start() did not create storage directory: %v", err)
	}
}

func TestStore_Retrieve_Delete(t *testing.T) {
	sys := newStorage(t, "")
	ctx := context.Background()
	key := "exports/sel_1/products.csv"

	if err := sys.Store(ctx, key, []byte("title\nShirt\n")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	data, err := sys.Retrieve(ctx, key)
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if string(data) != "title\nShirt\n" {
		t.Errorf("Retrieve() = %q", data)
	}

	if ok, _ := sys.Exists(ctx, key); !ok {
		t.Error("Exists() = false after Store")
	}

	if err := sys.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := sys.Delete(ctx, key); err != nil {
		t.Errorf("second Delete() = %v, want nil", err)
	}

	if _, err := sys.Retrieve(ctx, key); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() after delete = %v, want ErrNotFound", err)
	}
}

func TestStore_InvalidKeys(t *testing.T) {
	sys := newStorage(t, "")

	for _, key := range []string{"", "../escape", "/etc/passwd", "."} {
		t.Run(key, func(t *testing.T) {
			err := sys.Store(context.Background(), key, []byte("x"))
			if !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Store(%q) = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestStore_TooLarge(t *testing.T) {
	sys := newStorage(t, "8B")

	err := sys.Store(context.Background(), "big.bin", make([]byte, 9))
	if !errors.Is(err, storage.ErrTooLarge) {
		t.Errorf("Store() = %v, want ErrTooLarge", err)
	}
}

func TestConfig_Finalize(t *testing.T) {
	cfg := &storage.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.BasePath != ".data/blobs" {
		t.Errorf("BasePath = %q", cfg.BasePath)
	}
	if cfg.MaxObjectSizeBytes() != 64*1000*1000 {
		t.Errorf("MaxObjectSizeBytes() = %d, want %d", cfg.MaxObjectSizeBytes(), 64*1000*1000)
	}

	bad := &storage.Config{MaxObjectSize: "lots"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() accepted an unparseable size")
	}
}
