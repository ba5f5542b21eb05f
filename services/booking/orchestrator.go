package booking

import (
	"context"
	"fmt"

	"salonbook/models"
	"salonbook/services/schedule"
	"salonbook/utils"

	"go.uber.org/zap"
)

// Book runs one booking attempt. A decided attempt returns an outcome: either a
// confirmed booking or a rejection carrying alternatives. Failures return an error
// whose kind maps to the response status.
func (s *DefaultBookingService) Book(ctx context.Context, req models.BookingRequest) (*models.BookingOutcome, error) {
	master, sched, err := s.lookup(ctx, req)
	if err != nil {
		return nil, err
	}

	if !sched.IsAvailable(req.Time) {
		alts := s.findAlternatives(ctx, req, sched.AvailableTimes)
		utils.GetLogger().Info("Requested slot taken",
			zap.Int("masterId", req.MasterID),
			zap.String("date", req.Date),
			zap.String("time", req.Time),
			zap.Int("alternativeTimes", len(alts.Times)),
			zap.Int("alternativeDates", len(alts.Dates)),
		)
		return &models.BookingOutcome{MasterName: master.Name, Alternatives: alts}, nil
	}

	return s.reserveAndConfirm(ctx, req, master)
}

// QuickBook is Book without the alternative search.
func (s *DefaultBookingService) QuickBook(ctx context.Context, req models.BookingRequest) (*models.BookingOutcome, error) {
	master, sched, err := s.lookup(ctx, req)
	if err != nil {
		return nil, err
	}
	if !sched.IsAvailable(req.Time) {
		return nil, utils.Conflict("time taken")
	}
	return s.reserveAndConfirm(ctx, req, master)
}

func (s *DefaultBookingService) lookup(ctx context.Context, req models.BookingRequest) (*models.Master, *models.Schedule, error) {
	if err := validateRequest(req); err != nil {
		return nil, nil, err
	}

	master, err := s.Masters.GetMaster(ctx, req.MasterID)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, nil, utils.NewAppError(utils.KindNotFound, "master not found", err)
		}
		return nil, nil, utils.Upstream("failed to look up master", err)
	}

	sched, err := s.Masters.GetSchedule(ctx, req.MasterID, req.Date)
	if err != nil {
		return nil, nil, utils.Upstream("failed to get master schedule", err)
	}
	return master, sched, nil
}

func (s *DefaultBookingService) reserveAndConfirm(ctx context.Context, req models.BookingRequest, master *models.Master) (*models.BookingOutcome, error) {
	logger := utils.GetLogger()
	claim := models.SlotClaim{ClaimantID: req.ClaimantID, MasterID: req.MasterID, Date: req.Date, Time: req.Time}

	if err := s.Masters.ReserveSlot(ctx, claim); err != nil {
		if utils.IsKind(err, utils.KindConflict) {
			return nil, utils.NewAppError(utils.KindConflict, "slot was just booked by someone else", err)
		}
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, utils.NewAppError(utils.KindNotFound, "master not found", err)
		}
		// The claim may have been written before the call failed.
		if utils.IsKind(err, utils.KindUpstreamUnavailable) {
			s.watch(ctx, claim)
		}
		return nil, utils.Upstream("failed to reserve slot", err)
	}

	s.watch(ctx, claim)

	result, err := s.Confirmation.Confirm(ctx, models.ConfirmRequest{
		UserID:     req.ClaimantID,
		MasterID:   req.MasterID,
		MasterName: master.Name,
		Date:       req.Date,
		Time:       req.Time,
	})
	if err != nil {
		s.compensate(ctx, claim, err)
		return nil, utils.NewAppError(utils.KindConfirmation, "booking confirmation failed", err)
	}

	logger.Info("Booking confirmed",
		zap.Int64("bookingId", result.BookingID),
		zap.Int("userId", req.ClaimantID),
		zap.Int("masterId", req.MasterID),
		zap.String("date", req.Date),
		zap.String("time", req.Time),
	)

	s.recordHistory(ctx, req, master)
	s.notifyCreated(ctx, req, master, result.BookingID)

	return &models.BookingOutcome{
		Confirmed:  true,
		BookingID:  result.BookingID,
		Booking:    result.Booking,
		MasterName: master.Name,
	}, nil
}

func (s *DefaultBookingService) watch(ctx context.Context, claim models.SlotClaim) {
	if s.Watcher == nil {
		return
	}
	if err := s.Watcher.Watch(context.WithoutCancel(ctx), claim); err != nil {
		utils.GetLogger().Warn("Failed to schedule reservation check", zap.Any("claim", claim), zap.Error(err))
	}
}

// compensate frees a reservation whose confirmation failed. It runs even when the
// caller has gone away, since the slot would otherwise stay claimed.
func (s *DefaultBookingService) compensate(ctx context.Context, claim models.SlotClaim, cause error) {
	logger := utils.GetLogger()
	released, err := s.Masters.ReleaseClaim(context.WithoutCancel(ctx), claim)
	if err != nil {
		logger.Error("Compensation failed, reservation left in place",
			zap.Any("claim", claim), zap.NamedError("confirmError", cause), zap.Error(err))
		return
	}
	logger.Warn("Reservation released after confirmation failure",
		zap.Any("claim", claim), zap.Bool("released", released), zap.NamedError("confirmError", cause))
}

func (s *DefaultBookingService) recordHistory(ctx context.Context, req models.BookingRequest, master *models.Master) {
	err := s.History.RecordSession(ctx, models.SessionRequest{
		UserID:     req.ClaimantID,
		MasterID:   req.MasterID,
		MasterName: master.Name,
		Date:       req.Date,
		Time:       req.Time,
		Status:     models.SessionPending,
	})
	if err != nil {
		utils.GetLogger().Warn("Failed to record booking in history",
			zap.Int("userId", req.ClaimantID), zap.Int("masterId", req.MasterID), zap.Error(err))
	}
}

func (s *DefaultBookingService) notifyCreated(ctx context.Context, req models.BookingRequest, master *models.Master, bookingID int64) {
	err := s.Notifier.Notify(ctx, req.ClaimantID, models.EventBookingCreated, map[string]any{
		"booking_id":  bookingID,
		"master_id":   req.MasterID,
		"master_name": master.Name,
		"date":        req.Date,
		"time":        req.Time,
	})
	if err != nil {
		utils.GetLogger().Warn("Failed to send booking notification",
			zap.Int("userId", req.ClaimantID), zap.Int64("bookingId", bookingID), zap.Error(err))
	}
}

func validateRequest(req models.BookingRequest) error {
	if req.ClaimantID <= 0 || req.MasterID <= 0 || req.Date == "" || req.Time == "" {
		return utils.InvalidInput("user_id, master_id, date and time are required")
	}
	if _, err := schedule.ParseDate(req.Date); err != nil {
		return utils.NewAppError(utils.KindInvalidInput, "invalid date format, expected YYYY-MM-DD", err)
	}
	if _, err := schedule.ParseTime(req.Time); err != nil {
		return utils.NewAppError(utils.KindInvalidInput, "invalid time format, expected HH:MM", err)
	}
	return nil
}

func fallbackMasterName(id int) string {
	return fmt.Sprintf("Master #%d", id)
}
