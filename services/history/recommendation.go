package history

import (
	"context"
	"fmt"

	"salonbook/models"
	"salonbook/services/schedule"
	"salonbook/utils"

	"go.uber.org/zap"
)

const maxHourDistance = 2

// Recommend proposes rebooking the user's last completed visit for tomorrow: the
// same time when free, otherwise the first listed free time within two hours.
// It returns nil when there is nothing to suggest.
func (s *DefaultHistoryService) Recommend(ctx context.Context, userID int) (*models.Recommendation, error) {
	if userID <= 0 {
		return nil, utils.InvalidInput("user id must be positive")
	}

	last, err := s.lastVisit(ctx, userID)
	if err != nil || last == nil {
		return nil, err
	}

	tomorrow := s.now().AddDate(0, 0, 1)
	date := tomorrow.Format(schedule.DateLayout)

	sched, err := s.Masters.GetSchedule(ctx, last.MasterID, date)
	if err != nil {
		utils.GetLogger().Warn("No recommendation, schedule unavailable",
			zap.Int("userId", userID), zap.Int("masterId", last.MasterID), zap.Error(err))
		return nil, nil
	}

	name := sched.MasterName
	if name == "" {
		name = last.MasterName
	}
	rec := &models.Recommendation{MasterID: last.MasterID, MasterName: name, Date: date}

	if sched.IsAvailable(last.Time) {
		rec.Time = last.Time
		rec.Message = fmt.Sprintf("Book %s again tomorrow (%s) at %s?", name, tomorrow.Format("02.01.2006"), last.Time)
		return rec, nil
	}

	usual, err := schedule.ParseTime(last.Time)
	if err != nil {
		return nil, nil
	}
	for _, t := range sched.AvailableTimes {
		alt, err := schedule.ParseTime(t)
		if err != nil {
			continue
		}
		if abs(alt.Hour()-usual.Hour()) <= maxHourDistance {
			rec.Time = t
			rec.Message = fmt.Sprintf("%s is free tomorrow at %s, close to your usual %s", name, t, last.Time)
			return rec, nil
		}
	}
	return nil, nil
}

// lastVisit prefers the visit log. Users whose completions predate it only have
// completed sessions; the newest one is copied into the visit log on first use.
func (s *DefaultHistoryService) lastVisit(ctx context.Context, userID int) (*models.VisitRecord, error) {
	visit, err := s.Visits.LatestCompleted(ctx, userID)
	if err != nil {
		return nil, utils.Internal("failed to load visit history", err)
	}
	if visit != nil {
		return visit, nil
	}

	session, err := s.Sessions.LatestCompleted(ctx, userID)
	if err != nil {
		return nil, utils.Internal("failed to load session history", err)
	}
	if session == nil {
		return nil, nil
	}

	visit = s.visitFromSession(session)
	if err := s.Visits.Create(ctx, visit); err != nil {
		utils.GetLogger().Warn("Failed to backfill visit from session",
			zap.Int("userId", userID), zap.Int64("sessionId", session.ID), zap.Error(err))
	}
	return visit, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
