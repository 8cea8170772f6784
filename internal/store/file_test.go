package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cryptookie/internal/game"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "playerdata.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, err := s.Get(ctx, "ada"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}

	rec := game.NewRecord()
	rec.Balance = 123.45
	if err := s.Put(ctx, "ada", Player{Password: "hash", Record: rec}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "ada")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Password != "hash" || got.Balance != 123.45 {
		t.Fatalf("round trip lost data: %+v", got)
	}

	// A fresh store over the same file sees the same data.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err = reopened.Get(ctx, "ada")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Balance != 123.45 {
		t.Fatalf("reopened store lost data: %+v", got)
	}
}

func TestFileStoreKeepsOtherPlayers(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "playerdata.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := s.Put(ctx, "ada", Player{Password: "a", Record: game.NewRecord()}); err != nil {
		t.Fatalf("put ada: %v", err)
	}
	if err := s.Put(ctx, "bob", Player{Password: "b", Record: game.NewRecord()}); err != nil {
		t.Fatalf("put bob: %v", err)
	}
	if _, err := s.Get(ctx, "ada"); err != nil {
		t.Fatalf("ada vanished after writing bob: %v", err)
	}
}
