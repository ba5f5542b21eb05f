package user

import (
	"context"
	"net/mail"
	"strings"

	"salonbook/models"
	"salonbook/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Internal("failed to fetch user", err)
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}
	return user, nil
}

func (s *DefaultUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, utils.Internal("failed to list users", err)
	}
	return users, nil
}

// UpdateUser applies the non-nil fields of update.
func (s *DefaultUserService) UpdateUser(ctx context.Context, id int, update models.UserUpdate) (*models.User, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, utils.InvalidInput("name must not be empty")
		}
		fields["name"] = name
	}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, utils.InvalidInput("invalid email")
		}
		owner, err := s.Repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, utils.Internal("failed to check email", err)
		}
		if owner != nil && owner.ID != id {
			return nil, utils.Conflict("email already registered")
		}
		fields["email"] = email
	}
	if update.Role != nil {
		if !models.ValidRole(*update.Role) {
			return nil, utils.InvalidInput("invalid role")
		}
		fields["role"] = *update.Role
	}
	if len(fields) == 0 {
		return nil, utils.InvalidInput("no fields to update")
	}

	ok, err := s.Repo.Update(ctx, id, fields)
	if err != nil {
		return nil, utils.Internal("failed to update user", err)
	}
	if !ok {
		return nil, utils.Conflict("email already registered")
	}
	utils.GetLogger().Info("User updated", zap.Int("userID", id), zap.Int("fields", len(fields)))
	return s.GetUser(ctx, id)
}

// DeleteUser removes a user; the last admin cannot be removed.
func (s *DefaultUserService) DeleteUser(ctx context.Context, id int) error {
	target, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == models.RoleAdmin {
		counts, err := s.Repo.CountByRole(ctx)
		if err != nil {
			return utils.Internal("failed to count admins", err)
		}
		if counts[models.RoleAdmin] <= 1 {
			return utils.InvalidInput("cannot delete the last administrator")
		}
	}

	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return utils.Internal("failed to delete user", err)
	}
	if !deleted {
		return utils.NotFound("user not found")
	}
	return nil
}
