package session

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGBackend implements Backend on a PostgreSQL table:
//
//	CREATE TABLE sessions (
//	    id    TEXT PRIMARY KEY,
//	    skey  TEXT NOT NULL DEFAULT '',
//	    sdata TEXT NOT NULL DEFAULT ''
//	);
//
// Upserts rely on the single-row atomicity of INSERT ... ON CONFLICT;
// concurrent writers resolve to last-write-wins.
type PGBackend struct {
	pool *pgxpool.Pool
}

// NewPGBackend creates a Postgres session backend
func NewPGBackend(pool *pgxpool.Pool) *PGBackend {
	return &PGBackend{pool: pool}
}

func (p *PGBackend) Get(ctx context.Context, id string) (Record, bool, error) {
	var rec Record
	err := p.pool.QueryRow(ctx,
		`SELECT skey, sdata FROM sessions WHERE id = $1`,
		id,
	).Scan(&rec.Key, &rec.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}

	return rec, true, nil
}

func (p *PGBackend) Put(ctx context.Context, id string, rec Record) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO sessions (id, skey, sdata) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET skey = EXCLUDED.skey, sdata = EXCLUDED.sdata`,
		id, rec.Key, rec.Data,
	)
	return err
}

func (p *PGBackend) Delete(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}
