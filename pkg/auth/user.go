package auth

import "context"

// User is the account record the controller works with. Password holds
// the stored password record, Hash the current derived login record, and
// Lookup the opaque public identifier sent in the login cookie. A
// negative Status denotes a banned or disabled account.
type User struct {
	ID       int64
	Username string
	Password string
	Avatar   string
	Status   int
	Lookup   string
	Hash     string
}

// UserStore is the persistence contract the controller depends on.
// Find methods report absence through their bool, never through an
// error; an error always means the store itself failed.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (User, bool, error)
	FindByLookup(ctx context.Context, lookup string) (User, bool, error)
	Create(ctx context.Context, user User) (int64, error)
	UpdateLoginHash(ctx context.Context, id int64, hash string) error
	UpdatePassword(ctx context.Context, id int64, record string) error
}
