package notice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	seq     int
	notices map[string]*Notice
}

func newMemRepo() *memRepo {
	return &memRepo{notices: make(map[string]*Notice)}
}

func (r *memRepo) Create(_ context.Context, n *Notice) error {
	r.seq++
	n.ID = fmt.Sprintf("notice-%d", r.seq)
	n.CreatedAt = time.Now().UTC()
	cp := *n
	r.notices[n.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Notice, error) {
	n, ok := r.notices[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *memRepo) List(_ context.Context, _ Filter) ([]*Notice, int, error) {
	var result []*Notice
	for _, n := range r.notices {
		cp := *n
		result = append(result, &cp)
	}
	return result, len(result), nil
}

func (r *memRepo) Update(_ context.Context, n *Notice) error {
	if _, ok := r.notices[n.ID]; !ok {
		return ErrNotFound
	}
	cp := *n
	r.notices[n.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.notices[id]; !ok {
		return ErrNotFound
	}
	delete(r.notices, id)
	return nil
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		OrganizationID: "org-1",
		Title:          "  Office closed Friday  ",
		Body:           "Deep clean of the supply room, no dispatch after 14:00.",
		VisibleFrom:    time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		VisibleUntil:   time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC),
		CreatedBy:      "user-1",
	}
}

func TestCreateNotice(t *testing.T) {
	ctx := context.Background()

	t.Run("trims title", func(t *testing.T) {
		svc := NewService(newMemRepo())
		n, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)
		assert.Equal(t, "Office closed Friday", n.Title)
		assert.NotEmpty(t, n.ID)
	})

	t.Run("defaults visible_from to now", func(t *testing.T) {
		svc := NewService(newMemRepo())
		req := validCreateRequest()
		req.VisibleFrom = time.Time{}
		req.VisibleUntil = time.Now().UTC().Add(24 * time.Hour)

		before := time.Now().UTC()
		n, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.False(t, n.VisibleFrom.Before(before))
		assert.False(t, n.VisibleFrom.After(time.Now().UTC()))
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		svc := NewService(newMemRepo())
		req := validCreateRequest()
		req.VisibleUntil = req.VisibleFrom.Add(-time.Hour)
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("rejects empty window", func(t *testing.T) {
		svc := NewService(newMemRepo())
		req := validCreateRequest()
		req.VisibleUntil = req.VisibleFrom
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("requires title body and author", func(t *testing.T) {
		svc := NewService(newMemRepo())

		req := validCreateRequest()
		req.Title = "   "
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrTitleRequired)

		req = validCreateRequest()
		req.Body = ""
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrBodyRequired)

		req = validCreateRequest()
		req.CreatedBy = ""
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrAuthorRequired)
	})
}

func TestUpdateNotice(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	t.Run("updates title and body", func(t *testing.T) {
		title := "Office closed Friday afternoon"
		body := "Dispatch resumes Monday."
		n, err := svc.Update(ctx, created.ID, UpdateRequest{Title: &title, Body: &body})
		require.NoError(t, err)
		assert.Equal(t, title, n.Title)
		assert.Equal(t, body, n.Body)
	})

	t.Run("revalidates merged window", func(t *testing.T) {
		until := created.VisibleFrom.Add(-time.Hour)
		_, err := svc.Update(ctx, created.ID, UpdateRequest{VisibleUntil: &until})
		assert.ErrorIs(t, err, ErrInvalidWindow)

		// The failed update must not leak into storage.
		current, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.VisibleUntil, current.VisibleUntil)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		blank := "  "
		_, err := svc.Update(ctx, created.ID, UpdateRequest{Title: &blank})
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("missing notice", func(t *testing.T) {
		title := "whatever"
		_, err := svc.Update(ctx, "notice-999", UpdateRequest{Title: &title})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteNotice(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo())

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}
