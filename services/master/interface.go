package master

import (
	"context"
	"time"

	masterRepo "salonbook/database/repository/master"
	"salonbook/models"
	"salonbook/services/schedule"
)

// MasterService resolves availability and gates slot reservations for masters.
type MasterService interface {
	ListMasters(ctx context.Context) ([]models.Master, error)
	GetMaster(ctx context.Context, id int) (*models.Master, error)
	AvailableSlots(ctx context.Context, masterID int, date string) (*models.Schedule, error)
	Reserve(ctx context.Context, masterID int, date, time string, clientID int) (*models.BookedSlot, error)
	Release(ctx context.Context, masterID int, date, time string) (bool, error)
	ReleaseClaim(ctx context.Context, masterID int, date, time string, clientID int) (bool, error)
	ListBookings(ctx context.Context, masterID int) ([]models.BookedSlot, error)
	RecordVisit(ctx context.Context, visit models.MasterVisit) (*models.MasterVisit, error)
	VisitHistory(ctx context.Context, masterID int) ([]models.MasterVisit, error)
	SeedDefaults(ctx context.Context) error
}

// DefaultMasterService is the production implementation.
type DefaultMasterService struct {
	Masters masterRepo.MasterRepository
	Slots   masterRepo.SlotRepository
	Visits  masterRepo.VisitRepository
	Policy  schedule.Policy
	Clock   func() time.Time
}

// DefaultMasters are created on first start when missing.
var DefaultMasters = []models.Master{
	{ID: 1, Name: "Anna"},
	{ID: 2, Name: "Boris"},
}

func (s *DefaultMasterService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
