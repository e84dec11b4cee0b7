package fakeuserrepo

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/nelindogu/userdir/internal/errors"
	"github.com/nelindogu/userdir/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	rows   []users.User
	emails map[string]int // email to index in rows
	nextID int64
	lock   sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		emails: make(map[string]int),
		nextID: 1,
	}
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	idx, ok := ur.emails[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	user := ur.rows[idx]
	return &user, nil
}

func (ur *FakeUserRepo) Create(_ context.Context, name, email string) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.emails[email]; ok {
		return nil, apperrors.ErrDuplicateEmail
	}

	user := users.User{
		ID:        ur.nextID,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
	ur.nextID++
	ur.emails[email] = len(ur.rows)
	ur.rows = append(ur.rows, user)
	return &user, nil
}

func (ur *FakeUserRepo) List(_ context.Context) ([]users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	out := make([]users.User, len(ur.rows))
	copy(out, ur.rows)
	return out, nil
}
