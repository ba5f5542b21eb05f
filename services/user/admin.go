package user

import (
	"context"

	"salonbook/models"
	"salonbook/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) Stats(ctx context.Context) (*models.UserStats, error) {
	counts, err := s.Repo.CountByRole(ctx)
	if err != nil {
		return nil, utils.Internal("failed to count users", err)
	}
	stats := &models.UserStats{ByRole: counts}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// SeedDefaults creates the DefaultAccounts whose emails are not yet registered.
func (s *DefaultUserService) SeedDefaults(ctx context.Context) error {
	for _, acc := range DefaultAccounts {
		existing, err := s.Repo.GetByEmail(ctx, acc.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := s.createUser(ctx, acc.Name, acc.Email, acc.Password, acc.Role); err != nil {
			if utils.IsKind(err, utils.KindConflict) {
				continue
			}
			return err
		}
		utils.GetLogger().Info("Seeded default user", zap.String("email", acc.Email), zap.String("role", acc.Role))
	}
	return nil
}
