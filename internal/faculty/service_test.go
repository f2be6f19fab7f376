package faculty

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu       sync.Mutex
	profiles map[string]*Profile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: make(map[string]*Profile)}
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeRepo) Upsert(_ context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := r.profiles[p.Email]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = "profile-" + p.Email
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	clone := *p
	r.profiles[p.Email] = &clone
	return nil
}

func validProfile() *Profile {
	phone := "9876543210"
	return &Profile{
		Email:       "a@nec.edu.in",
		Name:        "Asha Iyer",
		Department:  "cse",
		Designation: "Assistant Professor",
		Phone:       &phone,
	}
}

func TestSaveProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("create then read back", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		saved, created, err := svc.Save(ctx, validProfile())
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEmpty(t, saved.ID)

		got, err := svc.Get(ctx, "a@nec.edu.in")
		require.NoError(t, err)
		assert.Equal(t, "Asha Iyer", got.Name)
		assert.Equal(t, "cse", got.Department)
	})

	t.Run("second save updates in place", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		first, _, err := svc.Save(ctx, validProfile())
		require.NoError(t, err)

		update := validProfile()
		update.Designation = "Professor"
		second, created, err := svc.Save(ctx, update)
		require.NoError(t, err)

		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "Professor", second.Designation)
	})

	t.Run("department code is normalized", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		p := validProfile()
		p.Department = "  CSE "
		saved, _, err := svc.Save(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, "cse", saved.Department)
	})

	t.Run("missing profile", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.Get(ctx, "nobody@nec.edu.in")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSaveProfileValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	tests := []struct {
		name    string
		mutate  func(p *Profile)
		wantErr error
	}{
		{"name too short", func(p *Profile) { p.Name = "A" }, ErrInvalidName},
		{"name only whitespace", func(p *Profile) { p.Name = "   " }, ErrInvalidName},
		{"unknown department", func(p *Profile) { p.Department = "chemistry" }, ErrInvalidDepartment},
		{"unknown designation", func(p *Profile) { p.Designation = "Dean" }, ErrInvalidDesignation},
		{"short phone", func(p *Profile) { ph := "12345"; p.Phone = &ph }, ErrInvalidPhone},
		{"non-numeric phone", func(p *Profile) { ph := "98765abcde"; p.Phone = &ph }, ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			_, _, err := svc.Save(ctx, p)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("empty phone is accepted", func(t *testing.T) {
		p := validProfile()
		p.Phone = nil
		_, _, err := svc.Save(ctx, p)
		assert.NoError(t, err)
	})
}
