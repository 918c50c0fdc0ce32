package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"

	"github.com/tidyops/dispatch-backend/internal/auth"
)

type memRepo struct {
	seq   int
	users map[string]*User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]*User)}
}

func (r *memRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now().UTC()
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) List(_ context.Context, _ Filter) ([]*User, int, error) {
	var result []*User
	for _, u := range r.users {
		cp := *u
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (r *memRepo) Update(_ context.Context, id string, req UpdateRequest) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if req.DisplayName != nil {
		u.DisplayName = req.DisplayName
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.IsSystemAdmin != nil {
		u.IsSystemAdmin = *req.IsSystemAdmin
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost)), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("success normalizes email", func(t *testing.T) {
		u, err := svc.Register(ctx, "  Dispatcher@TidyOps.dev ", "long-enough-pass", "Dana")
		require.NoError(t, err)
		assert.Equal(t, "dispatcher@tidyops.dev", u.Email)
		assert.True(t, u.IsActive)
		assert.NotEqual(t, "long-enough-pass", u.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "dispatcher@tidyops.dev", "long-enough-pass", "Copycat")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(ctx, "other@tidyops.dev", "short", "Sam")
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "lead@tidyops.dev", "long-enough-pass", "Lee")
	require.NoError(t, err)

	t.Run("success records last login", func(t *testing.T) {
		u, err := svc.Login(ctx, "lead@tidyops.dev", "long-enough-pass")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.NotNil(t, repo.users[u.ID].LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "lead@tidyops.dev", "wrong password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email looks like bad credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@tidyops.dev", "long-enough-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		inactive := false
		_, err := svc.Update(ctx, registered.ID, UpdateRequest{IsActive: &inactive})
		require.NoError(t, err)

		_, err = svc.Login(ctx, "lead@tidyops.dev", "long-enough-pass")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}
