package history

import (
	"context"
	"time"

	historyRepo "salonbook/database/repository/history"
	"salonbook/models"
	"salonbook/services/schedule"
	"salonbook/utils"

	"go.uber.org/zap"
)

const recentSessionDays = 7

// HistoryService keeps session and visit history and derives recommendations from it.
type HistoryService interface {
	AddSession(ctx context.Context, req models.SessionRequest) (*models.SessionRecord, error)
	UserSessions(ctx context.Context, userID int) ([]models.SessionRecord, error)
	UpdateSession(ctx context.Context, id int64, status string) (*models.SessionRecord, error)
	CompleteVisit(ctx context.Context, req models.SessionRequest) (*models.VisitRecord, error)
	Recommend(ctx context.Context, userID int) (*models.Recommendation, error)
}

// MasterSchedules is the part of the master service history depends on.
type MasterSchedules interface {
	GetSchedule(ctx context.Context, masterID int, date string) (*models.Schedule, error)
	ReleaseSlot(ctx context.Context, masterID int, date, time string) (bool, error)
}

// DefaultHistoryService is the production implementation.
type DefaultHistoryService struct {
	Sessions historyRepo.SessionRepository
	Visits   historyRepo.VisitRepository
	Masters  MasterSchedules
	Clock    func() time.Time
}

func (s *DefaultHistoryService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func validateSession(req models.SessionRequest) (time.Time, error) {
	if req.UserID <= 0 || req.MasterID <= 0 || req.Date == "" || req.Time == "" {
		return time.Time{}, utils.InvalidInput("user_id, master_id, date and time are required")
	}
	day, err := schedule.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, utils.NewAppError(utils.KindInvalidInput, "invalid date format, expected YYYY-MM-DD", err)
	}
	if _, err := schedule.ParseTime(req.Time); err != nil {
		return time.Time{}, utils.NewAppError(utils.KindInvalidInput, "invalid time format, expected HH:MM", err)
	}
	return day, nil
}

func (s *DefaultHistoryService) AddSession(ctx context.Context, req models.SessionRequest) (*models.SessionRecord, error) {
	day, err := validateSession(req)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.SessionPending
	}
	if !models.ValidSessionStatus(status) {
		return nil, utils.InvalidInput("unknown session status")
	}

	now := s.now().UTC()
	session := &models.SessionRecord{
		UserID:      req.UserID,
		UserName:    req.UserName,
		MasterID:    req.MasterID,
		MasterName:  req.MasterName,
		Date:        req.Date,
		Time:        req.Time,
		SessionDate: day,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.Sessions.Create(ctx, session)
	if err != nil {
		return nil, utils.Internal("failed to save session", err)
	}
	if !created {
		return nil, utils.Conflict("session already recorded")
	}
	return session, nil
}

// UserSessions lists sessions dated within the last week or later, newest first.
func (s *DefaultHistoryService) UserSessions(ctx context.Context, userID int) ([]models.SessionRecord, error) {
	today, _ := schedule.ParseDate(schedule.Today(s.now()))
	sessions, err := s.Sessions.ListByUserSince(ctx, userID, today.AddDate(0, 0, -recentSessionDays))
	if err != nil {
		return nil, utils.Internal("failed to load sessions", err)
	}
	return sessions, nil
}

// UpdateSession completes or cancels a pending session. Completion writes a visit;
// cancellation frees the master's slot.
func (s *DefaultHistoryService) UpdateSession(ctx context.Context, id int64, status string) (*models.SessionRecord, error) {
	if status != models.SessionCompleted && status != models.SessionCancelled {
		return nil, utils.InvalidInput("status must be completed or cancelled")
	}

	current, err := s.Sessions.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Internal("failed to load session", err)
	}
	if current == nil {
		return nil, utils.NotFound("session not found")
	}
	if current.Status != models.SessionPending {
		return nil, utils.Conflict("session is already " + current.Status)
	}

	updated, err := s.Sessions.TransitionStatus(ctx, id, models.SessionPending, status, s.now().UTC())
	if err != nil {
		return nil, utils.Internal("failed to update session", err)
	}
	if updated == nil {
		return nil, utils.Conflict("session was updated concurrently")
	}

	logger := utils.GetLogger()
	switch status {
	case models.SessionCompleted:
		if err := s.Visits.Create(ctx, s.visitFromSession(updated)); err != nil {
			logger.Warn("Session completed but visit not recorded", zap.Int64("sessionId", id), zap.Error(err))
		}
	case models.SessionCancelled:
		if _, err := s.Masters.ReleaseSlot(ctx, updated.MasterID, updated.Date, updated.Time); err != nil {
			logger.Warn("Session cancelled but slot not released", zap.Int64("sessionId", id), zap.Error(err))
		}
	}
	return updated, nil
}

// CompleteVisit records a visit directly and completes the matching pending session, if any.
func (s *DefaultHistoryService) CompleteVisit(ctx context.Context, req models.SessionRequest) (*models.VisitRecord, error) {
	day, err := validateSession(req)
	if err != nil {
		return nil, err
	}

	visit := &models.VisitRecord{
		UserID:     req.UserID,
		MasterID:   req.MasterID,
		MasterName: req.MasterName,
		Date:       req.Date,
		Time:       req.Time,
		DayOfWeek:  schedule.Weekday(day),
		Status:     models.SessionCompleted,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.Visits.Create(ctx, visit); err != nil {
		return nil, utils.Internal("failed to record visit", err)
	}

	session, err := s.Sessions.FindByUnit(ctx, req.UserID, req.MasterID, req.Date, req.Time)
	if err != nil {
		utils.GetLogger().Warn("Visit recorded but session lookup failed", zap.Int64("visitId", visit.ID), zap.Error(err))
		return visit, nil
	}
	if session != nil && session.Status == models.SessionPending {
		if _, err := s.Sessions.TransitionStatus(ctx, session.ID, models.SessionPending, models.SessionCompleted, s.now().UTC()); err != nil {
			utils.GetLogger().Warn("Visit recorded but session not completed", zap.Int64("sessionId", session.ID), zap.Error(err))
		}
	}
	return visit, nil
}

func (s *DefaultHistoryService) visitFromSession(session *models.SessionRecord) *models.VisitRecord {
	visit := &models.VisitRecord{
		UserID:     session.UserID,
		MasterID:   session.MasterID,
		MasterName: session.MasterName,
		Date:       session.Date,
		Time:       session.Time,
		Status:     models.SessionCompleted,
		CreatedAt:  s.now().UTC(),
	}
	if day, err := schedule.ParseDate(session.Date); err == nil {
		visit.DayOfWeek = schedule.Weekday(day)
	}
	return visit
}
