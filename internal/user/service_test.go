package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*User // keyed by email
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.seq++
	u.ID = "user-" + u.Email
	u.CreatedAt = time.Now().UTC()
	clone := *u
	r.users[u.Email] = &clone
	return nil
}

func (r *fakeRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.LastLoginAt = &t
			return nil
		}
	}
	return ErrNotFound
}

// plainHasher avoids bcrypt's cost in unit tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{}, "")

		u, err := svc.Register(ctx, "A@NEC.edu.in", "password123", "Asha Iyer")
		require.NoError(t, err)
		assert.Equal(t, "a@nec.edu.in", u.Email, "email must be normalized")
		assert.True(t, u.IsActive)
		assert.False(t, u.IsAdmin, "self-registration never grants admin")
		assert.NotEqual(t, "password123", u.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{}, "")
		_, err := svc.Register(ctx, "a@nec.edu.in", "password123", "Asha")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "a@nec.edu.in", "password456", "Another")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("password too short", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{}, "")
		_, err := svc.Register(ctx, "a@nec.edu.in", "short", "Asha")
		assert.Error(t, err)
	})

	t.Run("domain restriction", func(t *testing.T) {
		svc := NewService(newFakeRepo(), plainHasher{}, "nec.edu.in")

		_, err := svc.Register(ctx, "a@nec.edu.in", "password123", "Asha")
		assert.NoError(t, err)

		_, err = svc.Register(ctx, "b@gmail.com", "password123", "Outsider")
		assert.ErrorIs(t, err, ErrEmailNotAllowed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *fakeRepo) {
		repo := newFakeRepo()
		svc := NewService(repo, plainHasher{}, "")
		_, err := svc.Register(ctx, "a@nec.edu.in", "password123", "Asha")
		require.NoError(t, err)
		return svc, repo
	}

	t.Run("success updates last login", func(t *testing.T) {
		svc, repo := setup(t)

		u, err := svc.Login(ctx, "a@nec.edu.in", "password123")
		require.NoError(t, err)
		assert.Equal(t, "a@nec.edu.in", u.Email)

		stored, err := repo.GetByEmail(ctx, "a@nec.edu.in")
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := setup(t)
		_, err := svc.Login(ctx, "a@nec.edu.in", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := setup(t)
		_, err := svc.Login(ctx, "nobody@nec.edu.in", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, repo := setup(t)
		repo.mu.Lock()
		repo.users["a@nec.edu.in"].IsActive = false
		repo.mu.Unlock()

		_, err := svc.Login(ctx, "a@nec.edu.in", "password123")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}
