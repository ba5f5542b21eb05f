package master

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"salonbook/models"
	"salonbook/services/schedule"
	"salonbook/utils"

	"go.uber.org/zap"
)

func (s *DefaultMasterService) ListMasters(ctx context.Context) ([]models.Master, error) {
	masters, err := s.Masters.List(ctx)
	if err != nil {
		return nil, utils.Internal("failed to list masters", err)
	}
	return masters, nil
}

func (s *DefaultMasterService) GetMaster(ctx context.Context, id int) (*models.Master, error) {
	if id <= 0 {
		return nil, utils.InvalidInput("master id must be positive")
	}
	m, err := s.Masters.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Internal("failed to load master", err)
	}
	if m == nil {
		return nil, utils.NotFound(fmt.Sprintf("master %d not found", id))
	}
	return m, nil
}

// AvailableSlots returns the policy's slots for date with booked ones removed, in slot order.
func (s *DefaultMasterService) AvailableSlots(ctx context.Context, masterID int, date string) (*models.Schedule, error) {
	m, err := s.GetMaster(ctx, masterID)
	if err != nil {
		return nil, err
	}
	all, err := s.Policy.GenerateSlots(date)
	if err != nil {
		return nil, utils.NewAppError(utils.KindInvalidInput, "invalid date format, expected YYYY-MM-DD", err)
	}

	booked, err := s.Slots.ListBooked(ctx, masterID, date)
	if err != nil {
		return nil, utils.Internal("failed to load booked slots", err)
	}
	taken := make(map[string]bool, len(booked))
	bookedTimes := make([]string, 0, len(booked))
	for _, b := range booked {
		if !taken[b.Time] {
			taken[b.Time] = true
			bookedTimes = append(bookedTimes, b.Time)
		}
	}
	sort.Strings(bookedTimes)

	available := make([]string, 0, len(all))
	for _, t := range all {
		if !taken[t] {
			available = append(available, t)
		}
	}

	return &models.Schedule{
		MasterID:       m.ID,
		MasterName:     m.Name,
		Date:           date,
		AvailableTimes: available,
		BookedTimes:    bookedTimes,
		AllSlots:       all,
	}, nil
}

// Reserve claims the unit for clientID. Of any number of concurrent calls for the
// same unit, exactly one succeeds; the rest get a conflict.
func (s *DefaultMasterService) Reserve(ctx context.Context, masterID int, date, tm string, clientID int) (*models.BookedSlot, error) {
	if err := validateUnit(date, tm); err != nil {
		return nil, err
	}
	if clientID <= 0 {
		return nil, utils.InvalidInput("client_id is required")
	}
	if _, err := s.GetMaster(ctx, masterID); err != nil {
		return nil, err
	}

	slot := &models.BookedSlot{
		MasterID:  masterID,
		Date:      date,
		Time:      tm,
		ClientID:  clientID,
		CreatedAt: s.now().UTC(),
	}
	inserted, err := s.Slots.InsertIfAbsent(ctx, slot)
	if err != nil {
		return nil, utils.Internal("failed to reserve slot", err)
	}
	if !inserted {
		return nil, utils.Conflict("slot already booked")
	}

	utils.GetLogger().Info("Slot reserved",
		zap.Int("masterId", masterID),
		zap.String("date", date),
		zap.String("time", tm),
		zap.Int("clientId", clientID),
	)
	return slot, nil
}

// Release removes a claim. It is idempotent: releasing a free unit reports false.
func (s *DefaultMasterService) Release(ctx context.Context, masterID int, date, tm string) (bool, error) {
	return s.release(ctx, masterID, date, tm, 0)
}

// ReleaseClaim removes the claim only when clientID holds it, so a stale release
// cannot free a unit that has since been claimed by someone else.
func (s *DefaultMasterService) ReleaseClaim(ctx context.Context, masterID int, date, tm string, clientID int) (bool, error) {
	if clientID <= 0 {
		return false, utils.InvalidInput("client_id must be positive")
	}
	return s.release(ctx, masterID, date, tm, clientID)
}

func (s *DefaultMasterService) release(ctx context.Context, masterID int, date, tm string, clientID int) (bool, error) {
	if masterID <= 0 {
		return false, utils.InvalidInput("master_id is required")
	}
	if err := validateUnit(date, tm); err != nil {
		return false, err
	}

	var (
		released bool
		err      error
	)
	if clientID > 0 {
		released, err = s.Slots.DeleteClaim(ctx, masterID, date, tm, clientID)
	} else {
		released, err = s.Slots.Delete(ctx, masterID, date, tm)
	}
	if err != nil {
		return false, utils.Internal("failed to release slot", err)
	}
	utils.GetLogger().Info("Slot release",
		zap.Int("masterId", masterID),
		zap.String("date", date),
		zap.String("time", tm),
		zap.Int("clientId", clientID),
		zap.Bool("released", released),
	)
	return released, nil
}

func (s *DefaultMasterService) ListBookings(ctx context.Context, masterID int) ([]models.BookedSlot, error) {
	if _, err := s.GetMaster(ctx, masterID); err != nil {
		return nil, err
	}
	slots, err := s.Slots.ListByMaster(ctx, masterID)
	if err != nil {
		return nil, utils.Internal("failed to list bookings", err)
	}
	return slots, nil
}

// RecordVisit logs a visit; a completed visit frees the slot it occupied.
func (s *DefaultMasterService) RecordVisit(ctx context.Context, visit models.MasterVisit) (*models.MasterVisit, error) {
	if visit.MasterID <= 0 || visit.ClientID <= 0 {
		return nil, utils.InvalidInput("master_id and client_id are required")
	}
	if err := validateUnit(visit.Date, visit.Time); err != nil {
		return nil, err
	}
	visit.Status = strings.TrimSpace(visit.Status)
	if visit.Status == "" {
		visit.Status = models.SessionCompleted
	}
	visit.CreatedAt = s.now().UTC()

	if err := s.Visits.Create(ctx, &visit); err != nil {
		return nil, utils.Internal("failed to record visit", err)
	}

	if visit.Status == models.SessionCompleted {
		if _, err := s.Slots.Delete(ctx, visit.MasterID, visit.Date, visit.Time); err != nil {
			utils.GetLogger().Warn("Failed to free slot after completed visit",
				zap.Int("masterId", visit.MasterID), zap.String("date", visit.Date), zap.String("time", visit.Time), zap.Error(err))
		}
	}
	return &visit, nil
}

func (s *DefaultMasterService) VisitHistory(ctx context.Context, masterID int) ([]models.MasterVisit, error) {
	visits, err := s.Visits.ListByMaster(ctx, masterID)
	if err != nil {
		return nil, utils.Internal("failed to load visit history", err)
	}
	return visits, nil
}

// SeedDefaults inserts DefaultMasters that are missing.
func (s *DefaultMasterService) SeedDefaults(ctx context.Context) error {
	for _, m := range DefaultMasters {
		m.CreatedAt = s.now().UTC()
		if err := s.Masters.Upsert(ctx, &m); err != nil {
			return err
		}
	}
	return nil
}

func validateUnit(date, tm string) error {
	if date == "" || tm == "" {
		return utils.InvalidInput("date and time are required")
	}
	if _, err := schedule.ParseDate(date); err != nil {
		return utils.NewAppError(utils.KindInvalidInput, "invalid date format, expected YYYY-MM-DD", err)
	}
	if _, err := schedule.ParseTime(tm); err != nil {
		return utils.NewAppError(utils.KindInvalidInput, "invalid time format, expected HH:MM", err)
	}
	return nil
}
