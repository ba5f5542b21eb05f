package user

import (
	"context"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"salonbook/models"
	"salonbook/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if req.Role == "" {
		req.Role = models.RoleClient
	}

	if req.Name == "" {
		return nil, utils.InvalidInput("name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, utils.InvalidInput("invalid email")
	}
	if len(req.Password) < minPasswordLength {
		return nil, utils.InvalidInput("password must be at least 6 characters")
	}
	if !models.ValidRole(req.Role) {
		return nil, utils.InvalidInput("invalid role")
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("User registered", zap.Int("userID", user.ID), zap.String("role", user.Role))
	return &models.AuthResponse{User: user, Token: token}, nil
}

func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, utils.InvalidInput("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, utils.Internal("authentication failed, please try again", err)
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, utils.NewAppError(utils.KindUnauthorized, "invalid email or password", nil)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{User: user, Token: token}, nil
}

func (s *DefaultUserService) createUser(ctx context.Context, name, email, password, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Internal("failed to hash password", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	created, err := s.Repo.Create(ctx, user)
	if err != nil {
		utils.GetLogger().Error("Failed to create user", zap.String("email", email), zap.Error(err))
		return nil, utils.Internal("failed to create user", err)
	}
	if !created {
		return nil, utils.Conflict("email already registered")
	}
	return user, nil
}

func (s *DefaultUserService) issueToken(user *models.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, err := utils.GenerateToken(s.Secret, strconv.Itoa(user.ID), user.Email, user.Role, ttl)
	if err != nil {
		return "", utils.Internal("failed to issue token", err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
