package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
	// LockByUserID reads the user row FOR UPDATE.
	LockByUserID(ctx context.Context, userID string) (*User, error)
}
