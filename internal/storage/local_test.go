package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreWritesFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	url, err := store.Store(context.Background(), []byte("fake image bytes"), "pothole.jpg")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	if !strings.HasPrefix(url, "/uploads/") {
		t.Errorf("expected root-relative uploads URL, got %q", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("expected original extension preserved, got %q", url)
	}

	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored bytes differ from upload")
	}
}

func TestLocalStoreCollisionResistantNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	first, err := store.Store(context.Background(), []byte("a"), "photo.png")
	if err != nil {
		t.Fatalf("first Store: %v", err)
	}
	second, err := store.Store(context.Background(), []byte("b"), "photo.png")
	if err != nil {
		t.Fatalf("second Store: %v", err)
	}

	if first == second {
		t.Errorf("identical filenames produced the same URL: %q", first)
	}
}

func TestLocalStoreRejectsEmptyPayload(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	if _, err := store.Store(context.Background(), nil, "photo.png"); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestNewLocalStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := NewLocalStore(dir); err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("upload dir was not created: %v", err)
	}
}
