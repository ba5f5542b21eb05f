package masterRepo

import (
	"context"

	"salonbook/models"
)

// MasterRepository stores the bookable masters.
type MasterRepository interface {
	GetByID(ctx context.Context, id int) (*models.Master, error)
	List(ctx context.Context) ([]models.Master, error)
	Upsert(ctx context.Context, master *models.Master) error
}

// SlotRepository stores booked slots. The (masterId, date, time) triple is unique.
type SlotRepository interface {
	ListBooked(ctx context.Context, masterID int, date string) ([]models.BookedSlot, error)
	ListByMaster(ctx context.Context, masterID int) ([]models.BookedSlot, error)
	// InsertIfAbsent reports false when the unit is already claimed.
	InsertIfAbsent(ctx context.Context, slot *models.BookedSlot) (bool, error)
	// Delete reports false when no claim existed.
	Delete(ctx context.Context, masterID int, date, time string) (bool, error)
	// DeleteClaim is Delete restricted to the claim held by clientID.
	DeleteClaim(ctx context.Context, masterID int, date, time string, clientID int) (bool, error)
}

// VisitRepository stores the master-side visit log.
type VisitRepository interface {
	Create(ctx context.Context, visit *models.MasterVisit) error
	ListByMaster(ctx context.Context, masterID int) ([]models.MasterVisit, error)
}
