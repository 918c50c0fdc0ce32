package notice

import (
	"context"
	"strings"
	"time"
)

type CreateRequest struct {
	OrganizationID string
	Title          string
	Body           string
	VisibleFrom    time.Time
	VisibleUntil   time.Time
	CreatedBy      string
}

type UpdateRequest struct {
	Title        *string
	Body         *string
	VisibleFrom  *time.Time
	VisibleUntil *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Notice, error)
	GetByID(ctx context.Context, id string) (*Notice, error)
	List(ctx context.Context, filter Filter) ([]*Notice, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Notice, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Notice, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrBodyRequired
	}
	if req.CreatedBy == "" {
		return nil, ErrAuthorRequired
	}

	visibleFrom := req.VisibleFrom
	if visibleFrom.IsZero() {
		visibleFrom = time.Now().UTC()
	}
	if !req.VisibleUntil.After(visibleFrom) {
		return nil, ErrInvalidWindow
	}

	n := &Notice{
		OrganizationID: req.OrganizationID,
		Title:          title,
		Body:           req.Body,
		VisibleFrom:    visibleFrom,
		VisibleUntil:   req.VisibleUntil,
		CreatedBy:      req.CreatedBy,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Notice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Notice, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Notice, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		n.Title = title
	}
	if req.Body != nil {
		if strings.TrimSpace(*req.Body) == "" {
			return nil, ErrBodyRequired
		}
		n.Body = *req.Body
	}
	if req.VisibleFrom != nil {
		n.VisibleFrom = *req.VisibleFrom
	}
	if req.VisibleUntil != nil {
		n.VisibleUntil = *req.VisibleUntil
	}
	if !n.VisibleUntil.After(n.VisibleFrom) {
		return nil, ErrInvalidWindow
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
