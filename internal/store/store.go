// Package store persists one record per player. The file backend mirrors the
// original flat-file deployment; the postgres backend keeps the same record
// as a JSONB column for hosted setups.
package store

import (
	"context"
	"errors"

	"cryptookie/internal/game"
)

var ErrNotFound = errors.New("player not found")

// Player is the stored row: the password hash plus the game record, with the
// record's fields inlined so the file matches the historical data layout.
type Player struct {
	Password string `json:"password"`
	game.Record
}

type Store interface {
	// Get returns the stored player or ErrNotFound.
	Get(ctx context.Context, username string) (Player, error)
	// Put creates or replaces the stored player.
	Put(ctx context.Context, username string, p Player) error
	Close()
}
