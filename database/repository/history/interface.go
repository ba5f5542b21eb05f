package historyRepo

import (
	"context"
	"time"

	"salonbook/models"
)

// SessionRepository stores booked sessions. A user has at most one session per
// (master, date, time).
type SessionRepository interface {
	// Create reports false when the session already exists.
	Create(ctx context.Context, session *models.SessionRecord) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.SessionRecord, error)
	FindByUnit(ctx context.Context, userID, masterID int, date, time string) (*models.SessionRecord, error)
	ListByUserSince(ctx context.Context, userID int, since time.Time) ([]models.SessionRecord, error)
	// TransitionStatus moves a session from one status to another and returns the
	// updated record, or nil when the session is not in the from status.
	TransitionStatus(ctx context.Context, id int64, from, to string, at time.Time) (*models.SessionRecord, error)
	LatestCompleted(ctx context.Context, userID int) (*models.SessionRecord, error)
}

// VisitRepository stores completed visits.
type VisitRepository interface {
	Create(ctx context.Context, visit *models.VisitRecord) error
	LatestCompleted(ctx context.Context, userID int) (*models.VisitRecord, error)
	ListByUser(ctx context.Context, userID int) ([]models.VisitRecord, error)
}
