package users

import "context"

// Repo is the append-only store contract. Rows are never updated or deleted;
// a returning user's name is deliberately not refreshed.
type Repo interface {
	// GetByEmail returns ErrUserNotFound when no row matches.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Create inserts a new row and returns it with its surrogate id assigned.
	// Inserting an email that already exists returns ErrDuplicateEmail.
	Create(ctx context.Context, name, email string) (*User, error)
	// List returns every row in insertion order.
	List(ctx context.Context) ([]User, error)
}
