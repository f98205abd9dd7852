package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, size, mimeType, err := store.Save(ctx, "2026/10/16", "lunch menu.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len(pngHeader)) {
		t.Fatalf("expected size %d, got %d", len(pngHeader), size)
	}
	if mimeType != "image/png" {
		t.Fatalf("expected image/png, got %q", mimeType)
	}
	if !strings.HasPrefix(key, "2026/10/16/") || !strings.HasSuffix(key, "_lunch menu.png") {
		t.Fatalf("unexpected key %q", key)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if !bytes.Equal(got, pngHeader) {
		t.Fatalf("round trip mismatch")
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../secret"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestSaveRejectsBadName(t *testing.T) {
	store := New(t.TempDir())
	if _, _, _, err := store.Save(context.Background(), "ns", "../x.png", bytes.NewReader(pngHeader)); err == nil {
		t.Fatalf("expected invalid file name error")
	}
}
