package booking

import (
	"context"
	"time"

	"salonbook/models"
)

// BookingService runs booking attempts against the remote collaborators.
type BookingService interface {
	Book(ctx context.Context, req models.BookingRequest) (*models.BookingOutcome, error)
	QuickBook(ctx context.Context, req models.BookingRequest) (*models.BookingOutcome, error)
	CheckAvailability(ctx context.Context, masterID int, date, time string) (*models.AvailabilityCheck, error)
	MasterAvailability(ctx context.Context, masterID int) (*models.MasterAvailability, error)
	ReconcileReservation(ctx context.Context, claim models.SlotClaim) (bool, error)
}

// MasterDirectory resolves masters, their schedules and slot claims.
type MasterDirectory interface {
	GetMaster(ctx context.Context, id int) (*models.Master, error)
	GetSchedule(ctx context.Context, masterID int, date string) (*models.Schedule, error)
	ReserveSlot(ctx context.Context, claim models.SlotClaim) error
	// ReleaseClaim frees the unit only while claim.ClaimantID holds it.
	ReleaseClaim(ctx context.Context, claim models.SlotClaim) (bool, error)
}

// Confirmer persists confirmed bookings. It rejects a second booking for the same
// (user, master, date, time) on its own.
type Confirmer interface {
	Confirm(ctx context.Context, req models.ConfirmRequest) (*models.ConfirmResult, error)
	Exists(ctx context.Context, claim models.SlotClaim) (bool, error)
}

// HistoryRecorder and Notifier are advisory: their failures are logged and dropped.
type HistoryRecorder interface {
	RecordSession(ctx context.Context, req models.SessionRequest) error
}

type Notifier interface {
	Notify(ctx context.Context, userID int, eventType string, payload map[string]any) error
}

// ReservationWatcher schedules a later check that a reservation was confirmed.
type ReservationWatcher interface {
	Watch(ctx context.Context, claim models.SlotClaim) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Masters      MasterDirectory
	Confirmation Confirmer
	History      HistoryRecorder
	Notifier     Notifier
	Watcher      ReservationWatcher // nil disables reconciliation
	Locale       string
	Clock        func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
