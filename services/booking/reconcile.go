package booking

import (
	"context"

	"salonbook/models"
	"salonbook/utils"

	"go.uber.org/zap"
)

// ReconcileReservation frees a reservation that never got a confirmed booking.
// It reports whether a claim was released. A unit since claimed by someone else is
// left alone.
func (s *DefaultBookingService) ReconcileReservation(ctx context.Context, claim models.SlotClaim) (bool, error) {
	confirmed, err := s.Confirmation.Exists(ctx, claim)
	if err != nil {
		return false, err
	}
	if confirmed {
		return false, nil
	}

	released, err := s.Masters.ReleaseClaim(ctx, claim)
	if err != nil {
		return false, err
	}
	if released {
		utils.GetLogger().Warn("Released unconfirmed reservation", zap.Any("claim", claim))
	}
	return released, nil
}
