package bookingRepo

import (
	"context"

	"salonbook/models"
)

// BookingRepository stores confirmed bookings. A user holds at most one booking
// per (master, date, time).
type BookingRepository interface {
	// CreateIfAbsent reports false when the user already holds this booking.
	CreateIfAbsent(ctx context.Context, booking *models.Booking) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	FindByUnit(ctx context.Context, userID, masterID int, date, time string) (*models.Booking, error)
	ListFrom(ctx context.Context, fromDate string) ([]models.Booking, error)
	ListByUser(ctx context.Context, userID int) ([]models.Booking, error)
	ListByMaster(ctx context.Context, masterID int) ([]models.Booking, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
