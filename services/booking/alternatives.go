package booking

import (
	"context"
	"sort"

	"salonbook/models"
	"salonbook/services/schedule"
	"salonbook/utils"

	"go.uber.org/zap"
)

const (
	maxAlternatives     = 3
	alternativeScanDays = 7
)

// RankSameDay orders the available times strictly after requested by distance,
// nearest first, and keeps at most limit of them. Earlier times are never offered.
func RankSameDay(requested string, available []string, limit int) []string {
	type candidate struct {
		time string
		diff int
	}

	var candidates []candidate
	for _, t := range available {
		diff, err := schedule.MinutesBetween(requested, t)
		if err != nil || diff <= 0 {
			continue
		}
		candidates = append(candidates, candidate{time: t, diff: diff})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].diff < candidates[j].diff })

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.time)
	}
	return out
}

// findAlternatives tries later times on the same day first, then the same time on
// the following days.
func (s *DefaultBookingService) findAlternatives(ctx context.Context, req models.BookingRequest, available []string) models.Alternatives {
	if times := RankSameDay(req.Time, available, maxAlternatives); len(times) > 0 {
		return models.Alternatives{Times: times}
	}
	return models.Alternatives{Dates: s.scanForward(ctx, req)}
}

func (s *DefaultBookingService) scanForward(ctx context.Context, req models.BookingRequest) []models.AlternativeDate {
	start, err := schedule.ParseDate(req.Date)
	if err != nil {
		return nil
	}

	var dates []models.AlternativeDate
	for i := 1; i <= alternativeScanDays && len(dates) < maxAlternatives; i++ {
		day := start.AddDate(0, 0, i)
		date := day.Format(schedule.DateLayout)

		sched, err := s.Masters.GetSchedule(ctx, req.MasterID, date)
		if err != nil {
			utils.GetLogger().Debug("Skipping date in alternative scan",
				zap.Int("masterId", req.MasterID), zap.String("date", date), zap.Error(err))
			continue
		}
		if sched.IsAvailable(req.Time) {
			dates = append(dates, models.AlternativeDate{
				Date:      date,
				DayOfWeek: schedule.Weekday(day),
				Formatted: schedule.FormatDate(date, s.Locale),
			})
		}
	}
	return dates
}
