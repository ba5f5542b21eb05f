package booking

import (
	"context"
	"errors"
	"sync"

	"salonbook/models"
	"salonbook/services/schedule"
	"salonbook/utils"

	"github.com/stretchr/testify/mock"
)

// fakeMasters is an in-memory master service built on the real schedule policy.
type fakeMasters struct {
	mu           sync.Mutex
	masters      map[int]string
	booked       map[models.SlotClaim]int // unit -> claimant
	policy       schedule.Policy
	scheduleErr  error
	releaseCalls int
}

func newFakeMasters() *fakeMasters {
	return &fakeMasters{
		masters: map[int]string{1: "Anna", 2: "Boris"},
		booked:  map[models.SlotClaim]int{},
		policy:  schedule.DefaultPolicy(),
	}
}

func unitOf(masterID int, date, tm string) models.SlotClaim {
	return models.SlotClaim{MasterID: masterID, Date: date, Time: tm}
}

func (f *fakeMasters) book(masterID int, date string, times ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range times {
		f.booked[unitOf(masterID, date, t)] = 0
	}
}

func (f *fakeMasters) isBooked(masterID int, date, tm string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.booked[unitOf(masterID, date, tm)]
	return ok
}

func (f *fakeMasters) GetMaster(ctx context.Context, id int) (*models.Master, error) {
	name, ok := f.masters[id]
	if !ok {
		return nil, utils.NotFound("master not found")
	}
	return &models.Master{ID: id, Name: name}, nil
}

func (f *fakeMasters) GetSchedule(ctx context.Context, masterID int, date string) (*models.Schedule, error) {
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	name, ok := f.masters[masterID]
	if !ok {
		return nil, utils.NotFound("master not found")
	}
	all, err := f.policy.GenerateSlots(date)
	if err != nil {
		return nil, utils.InvalidInput(err.Error())
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	s := &models.Schedule{MasterID: masterID, MasterName: name, Date: date, AllSlots: all, AvailableTimes: []string{}}
	for _, t := range all {
		if _, taken := f.booked[unitOf(masterID, date, t)]; taken {
			s.BookedTimes = append(s.BookedTimes, t)
		} else {
			s.AvailableTimes = append(s.AvailableTimes, t)
		}
	}
	return s, nil
}

func (f *fakeMasters) ReserveSlot(ctx context.Context, claim models.SlotClaim) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := unitOf(claim.MasterID, claim.Date, claim.Time)
	if _, taken := f.booked[k]; taken {
		return utils.Conflict("slot already booked")
	}
	f.booked[k] = claim.ClaimantID
	return nil
}

func (f *fakeMasters) ReleaseClaim(ctx context.Context, claim models.SlotClaim) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releaseCalls++
	k := unitOf(claim.MasterID, claim.Date, claim.Time)
	holder, ok := f.booked[k]
	if !ok || holder != claim.ClaimantID {
		return false, nil
	}
	delete(f.booked, k)
	return true, nil
}

// holder reports who claims the unit.
func (f *fakeMasters) holder(masterID int, date, tm string) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.booked[unitOf(masterID, date, tm)]
	return c, ok
}

type mockConfirmer struct{ mock.Mock }

func (m *mockConfirmer) Confirm(ctx context.Context, req models.ConfirmRequest) (*models.ConfirmResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*models.ConfirmResult)
	return res, args.Error(1)
}

func (m *mockConfirmer) Exists(ctx context.Context, claim models.SlotClaim) (bool, error) {
	args := m.Called(ctx, claim)
	return args.Bool(0), args.Error(1)
}

type mockHistory struct{ mock.Mock }

func (m *mockHistory) RecordSession(ctx context.Context, req models.SessionRequest) error {
	return m.Called(ctx, req).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, userID int, eventType string, payload map[string]any) error {
	return m.Called(ctx, userID, eventType, payload).Error(0)
}

type mockWatcher struct{ mock.Mock }

func (m *mockWatcher) Watch(ctx context.Context, claim models.SlotClaim) error {
	return m.Called(ctx, claim).Error(0)
}

var errDown = errors.New("connection refused")
