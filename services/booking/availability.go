package booking

import (
	"context"
	"sort"

	"salonbook/models"
	"salonbook/services/schedule"
	"salonbook/utils"

	"go.uber.org/zap"
)

const availabilityWindowDays = 5

// CheckAvailability reports whether one unit is free.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, masterID int, date, tm string) (*models.AvailabilityCheck, error) {
	if masterID <= 0 {
		return nil, utils.InvalidInput("master id must be positive")
	}
	if _, err := schedule.ParseDate(date); err != nil {
		return nil, utils.NewAppError(utils.KindInvalidInput, "invalid date format, expected YYYY-MM-DD", err)
	}
	if _, err := schedule.ParseTime(tm); err != nil {
		return nil, utils.NewAppError(utils.KindInvalidInput, "invalid time format, expected HH:MM", err)
	}

	sched, err := s.Masters.GetSchedule(ctx, masterID, date)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, utils.NewAppError(utils.KindNotFound, "master not found", err)
		}
		return nil, utils.Upstream("failed to get master schedule", err)
	}

	name := sched.MasterName
	if name == "" {
		name = fallbackMasterName(masterID)
	}
	return &models.AvailabilityCheck{
		Available:  sched.IsAvailable(tm),
		MasterID:   masterID,
		MasterName: name,
		Date:       date,
		Time:       tm,
	}, nil
}

// MasterAvailability summarizes the next days starting today. Days whose schedule
// cannot be fetched are left out.
func (s *DefaultBookingService) MasterAvailability(ctx context.Context, masterID int) (*models.MasterAvailability, error) {
	if masterID <= 0 {
		return nil, utils.InvalidInput("master id must be positive")
	}
	master, err := s.Masters.GetMaster(ctx, masterID)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, utils.NewAppError(utils.KindNotFound, "master not found", err)
		}
		return nil, utils.Upstream("failed to look up master", err)
	}

	today := s.now()
	result := &models.MasterAvailability{
		MasterID:     masterID,
		MasterName:   master.Name,
		Availability: make(map[string]models.DayAvailability, availabilityWindowDays),
	}

	var open []string
	for i := 0; i < availabilityWindowDays; i++ {
		day := today.AddDate(0, 0, i)
		date := day.Format(schedule.DateLayout)

		sched, err := s.Masters.GetSchedule(ctx, masterID, date)
		if err != nil {
			utils.GetLogger().Warn("Skipping day in availability view",
				zap.Int("masterId", masterID), zap.String("date", date), zap.Error(err))
			continue
		}
		slots := sched.AvailableTimes
		if slots == nil {
			slots = []string{}
		}
		result.Availability[date] = models.DayAvailability{
			Available:      len(slots) > 0,
			AvailableSlots: slots,
			DayOfWeek:      schedule.Weekday(day),
			FormattedDate:  schedule.FormatDate(date, s.Locale),
		}
		if len(slots) > 0 {
			open = append(open, date)
		}
	}

	if len(open) > 0 {
		sort.Strings(open)
		result.NextAvailable = &open[0]
	}
	return result, nil
}
