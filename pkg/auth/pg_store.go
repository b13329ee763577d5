package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements UserStore on PostgreSQL:
//
//	CREATE TABLE users (
//	    id       BIGSERIAL PRIMARY KEY,
//	    username TEXT NOT NULL UNIQUE,
//	    password TEXT NOT NULL,
//	    avatar   TEXT NOT NULL DEFAULT '',
//	    status   INT  NOT NULL DEFAULT 0,
//	    lookup   TEXT NOT NULL UNIQUE,
//	    hash     TEXT NOT NULL DEFAULT ''
//	);
//
// Username matching is case-sensitive by design; "Alice" and "alice"
// are distinct accounts.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a Postgres user store
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const userColumns = `id, username, password, avatar, status, lookup, hash`

func (p *PGStore) FindByUsername(ctx context.Context, username string) (User, bool, error) {
	return p.findBy(ctx, `username`, username)
}

func (p *PGStore) FindByLookup(ctx context.Context, lookup string) (User, bool, error) {
	return p.findBy(ctx, `lookup`, lookup)
}

func (p *PGStore) findBy(ctx context.Context, column, value string) (User, bool, error) {
	var u User
	err := p.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = $1`,
		value,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Avatar, &u.Status, &u.Lookup, &u.Hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, false, nil
		}
		return User{}, false, err
	}

	return u, true, nil
}

func (p *PGStore) Create(ctx context.Context, user User) (int64, error) {
	var id int64
	err := p.pool.QueryRow(ctx,
		`INSERT INTO users (username, password, avatar, status, lookup, hash)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		user.Username, user.Password, user.Avatar, user.Status, user.Lookup, user.Hash,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (p *PGStore) UpdateLoginHash(ctx context.Context, id int64, hash string) error {
	_, err := p.pool.Exec(ctx, `UPDATE users SET hash = $2 WHERE id = $1`, id, hash)
	return err
}

func (p *PGStore) UpdatePassword(ctx context.Context, id int64, record string) error {
	_, err := p.pool.Exec(ctx, `UPDATE users SET password = $2 WHERE id = $1`, id, record)
	return err
}
