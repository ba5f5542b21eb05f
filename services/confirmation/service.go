package confirmation

import (
	"context"
	"fmt"
	"time"

	bookingRepo "salonbook/database/repository/booking"
	"salonbook/models"
	"salonbook/services/schedule"
	"salonbook/utils"

	"go.uber.org/zap"
)

// ConfirmationService turns reserved slots into confirmed bookings.
type ConfirmationService interface {
	Confirm(ctx context.Context, req models.ConfirmRequest) (*models.ConfirmResult, error)
	Lookup(ctx context.Context, claim models.SlotClaim) (*models.Booking, error)
	ActiveBookings(ctx context.Context) ([]models.Booking, error)
	UserBookings(ctx context.Context, userID int) ([]models.Booking, error)
	MasterBookings(ctx context.Context, masterID int) ([]models.Booking, error)
	Cancel(ctx context.Context, bookingID int64) (*models.Booking, error)
}

// UserDirectory resolves the user a booking is made for.
type UserDirectory interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
}

// SlotReleaser frees the master's slot when a booking is cancelled.
type SlotReleaser interface {
	ReleaseSlot(ctx context.Context, masterID int, date, time string) (bool, error)
}

// DefaultConfirmationService is the production implementation.
type DefaultConfirmationService struct {
	Repo  bookingRepo.BookingRepository
	Users UserDirectory
	Slots SlotReleaser
	Clock func() time.Time
}

func (s *DefaultConfirmationService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *DefaultConfirmationService) Confirm(ctx context.Context, req models.ConfirmRequest) (*models.ConfirmResult, error) {
	if req.UserID <= 0 || req.MasterID <= 0 || req.Date == "" || req.Time == "" {
		return nil, utils.InvalidInput("user_id, master_id, date and time are required")
	}
	if _, err := schedule.ParseDate(req.Date); err != nil {
		return nil, utils.NewAppError(utils.KindInvalidInput, "invalid date format, expected YYYY-MM-DD", err)
	}
	if _, err := schedule.ParseTime(req.Time); err != nil {
		return nil, utils.NewAppError(utils.KindInvalidInput, "invalid time format, expected HH:MM", err)
	}

	user, err := s.Users.GetUser(ctx, req.UserID)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, utils.NewAppError(utils.KindNotFound, "user not found", err)
		}
		return nil, utils.Upstream("failed to look up user", err)
	}

	masterName := req.MasterName
	if masterName == "" {
		masterName = fmt.Sprintf("Master #%d", req.MasterID)
	}

	booking := &models.Booking{
		UserID:     req.UserID,
		UserName:   user.Name,
		MasterID:   req.MasterID,
		MasterName: masterName,
		Date:       req.Date,
		Time:       req.Time,
		CreatedAt:  s.now().UTC(),
	}
	inserted, err := s.Repo.CreateIfAbsent(ctx, booking)
	if err != nil {
		return nil, utils.Internal("failed to save booking", err)
	}
	if !inserted {
		return nil, utils.Conflict("you already have a booking for this time")
	}

	utils.GetLogger().Info("Booking stored",
		zap.Int64("bookingId", booking.ID),
		zap.Int("userId", booking.UserID),
		zap.Int("masterId", booking.MasterID),
	)
	return &models.ConfirmResult{BookingID: booking.ID, Booking: booking}, nil
}

// Lookup returns nil, nil when no booking holds the claimed unit.
func (s *DefaultConfirmationService) Lookup(ctx context.Context, claim models.SlotClaim) (*models.Booking, error) {
	if claim.ClaimantID <= 0 || claim.MasterID <= 0 || claim.Date == "" || claim.Time == "" {
		return nil, utils.InvalidInput("user_id, master_id, date and time are required")
	}
	b, err := s.Repo.FindByUnit(ctx, claim.ClaimantID, claim.MasterID, claim.Date, claim.Time)
	if err != nil {
		return nil, utils.Internal("failed to look up booking", err)
	}
	return b, nil
}

// ActiveBookings lists bookings dated today or later.
func (s *DefaultConfirmationService) ActiveBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.Repo.ListFrom(ctx, schedule.Today(s.now()))
	if err != nil {
		return nil, utils.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

func (s *DefaultConfirmationService) UserBookings(ctx context.Context, userID int) ([]models.Booking, error) {
	bookings, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

func (s *DefaultConfirmationService) MasterBookings(ctx context.Context, masterID int) ([]models.Booking, error) {
	bookings, err := s.Repo.ListByMaster(ctx, masterID)
	if err != nil {
		return nil, utils.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

// Cancel deletes a booking and frees its slot. A slot that cannot be freed is
// logged; the booking stays deleted.
func (s *DefaultConfirmationService) Cancel(ctx context.Context, bookingID int64) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.Internal("failed to load booking", err)
	}
	if b == nil {
		return nil, utils.NotFound("booking not found")
	}

	deleted, err := s.Repo.Delete(ctx, bookingID)
	if err != nil {
		return nil, utils.Internal("failed to cancel booking", err)
	}
	if !deleted {
		return nil, utils.NotFound("booking not found")
	}

	if _, err := s.Slots.ReleaseSlot(ctx, b.MasterID, b.Date, b.Time); err != nil {
		utils.GetLogger().Warn("Booking cancelled but slot not released",
			zap.Int64("bookingId", bookingID), zap.Int("masterId", b.MasterID),
			zap.String("date", b.Date), zap.String("time", b.Time), zap.Error(err))
	}
	return b, nil
}
