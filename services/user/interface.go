package user

import (
	"context"
	"time"

	userRepo "salonbook/database/repository/user"
	"salonbook/models"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	// User Management
	GetUser(ctx context.Context, id int) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int, update models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error

	// Admin / Utility
	Stats(ctx context.Context) (*models.UserStats, error)
	SeedDefaults(ctx context.Context) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Secret   []byte
	TokenTTL time.Duration
	Clock    func() time.Time
}

// DefaultAccount is a user created on first start when its email is free.
type DefaultAccount struct {
	Name     string
	Email    string
	Password string
	Role     string
}

var DefaultAccounts = []DefaultAccount{
	{Name: "Admin", Email: "admin@admin.com", Password: "admin123", Role: models.RoleAdmin},
	{Name: "Anna", Email: "anna@master.com", Password: "master123", Role: models.RoleMaster},
	{Name: "Boris", Email: "boris@master.com", Password: "master123", Role: models.RoleMaster},
}

func (s *DefaultUserService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
