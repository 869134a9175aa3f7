package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalDirPutOpenRoundTrip(t *testing.T) {
	bs, err := NewLocalDir(t.TempDir())
	if err != nil {
		t.Fatalf("new local dir: %v", err)
	}
	ctx := context.Background()

	if err := bs.Put(ctx, "abc.png", "image/x-png", strings.NewReader("pixels")); err != nil {
		t.Fatalf("put: %v", err)
	}

	rc, err := bs.Open(ctx, "abc.png")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "pixels" {
		t.Fatalf("expected 'pixels', got %q", data)
	}
}

func TestLocalDirOpenMissing(t *testing.T) {
	bs, err := NewLocalDir(t.TempDir())
	if err != nil {
		t.Fatalf("new local dir: %v", err)
	}

	_, err = bs.Open(context.Background(), "missing.mp3")
	if !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestLocalDirPutOverwrites(t *testing.T) {
	bs, err := NewLocalDir(t.TempDir())
	if err != nil {
		t.Fatalf("new local dir: %v", err)
	}
	ctx := context.Background()

	if err := bs.Put(ctx, "key.jpg", "image/jpeg", strings.NewReader("one")); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := bs.Put(ctx, "key.jpg", "image/jpeg", strings.NewReader("two")); err != nil {
		t.Fatalf("second put: %v", err)
	}

	rc, err := bs.Open(ctx, "key.jpg")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "two" {
		t.Fatalf("expected 'two', got %q", data)
	}
}

func TestLocalDirRejectsTraversalKeys(t *testing.T) {
	root := t.TempDir()
	bs, err := NewLocalDir(root)
	if err != nil {
		t.Fatalf("new local dir: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"", "..", ".", "tmp", "../escape.png", "a/b.png"} {
		if err := bs.Put(ctx, key, "image/x-png", strings.NewReader("x")); err == nil {
			t.Fatalf("expected put with key %q to fail", key)
		}
		if _, err := bs.Open(ctx, key); err == nil {
			t.Fatalf("expected open with key %q to fail", key)
		}
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(root), "escape.png")); err == nil {
		t.Fatal("traversal key escaped the blob root")
	}
}

func TestLocalDirLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	bs, err := NewLocalDir(root)
	if err != nil {
		t.Fatalf("new local dir: %v", err)
	}

	if err := bs.Put(context.Background(), "ok.mp3", "audio/mpeg", strings.NewReader("sound")); err != nil {
		t.Fatalf("put: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "tmp"))
	if err != nil {
		t.Fatalf("read tmp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty tmp dir, found %d entries", len(entries))
	}
}
