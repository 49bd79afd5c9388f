package usermock

import (
	"context"

	domain "student-lending-core/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, u *domain.User) error
	GetByUserIDFn  func(ctx context.Context, userID string) (*domain.User, error)
	LockByUserIDFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) LockByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.LockByUserIDFn != nil {
		return m.LockByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}
