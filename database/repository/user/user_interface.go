package userRepo

import (
	"context"

	"salonbook/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID returns nil, nil when no user has the id.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// GetByEmail returns nil, nil when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	// Create assigns the next id; it reports false when the email is taken.
	Create(ctx context.Context, user *models.User) (bool, error)
	// Update reports false when the new email belongs to another user.
	Update(ctx context.Context, id int, fields map[string]any) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}
