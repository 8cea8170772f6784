package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores each player as one row with the record as JSONB.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS players (
			username   text PRIMARY KEY,
			password   text NOT NULL,
			record     jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("ensure players table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (s *Postgres) Get(ctx context.Context, username string) (Player, error) {
	var p Player
	var raw []byte
	err := s.pool.QueryRow(ctx, `
		SELECT password, record
		FROM players
		WHERE username = $1
	`, username).Scan(&p.Password, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Player{}, ErrNotFound
		}
		return Player{}, err
	}
	if err := json.Unmarshal(raw, &p.Record); err != nil {
		return Player{}, fmt.Errorf("decode record for %s: %w", username, err)
	}
	return p, nil
}

func (s *Postgres) Put(ctx context.Context, username string, p Player) error {
	raw, err := json.Marshal(p.Record)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO players (username, password, record)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE
		SET password = $2, record = $3, updated_at = now()
	`, username, p.Password, raw)
	return err
}

func (s *Postgres) Close() {
	s.pool.Close()
}
