package master

import (
	"context"
	"sync"
	"testing"

	"salonbook/models"
	"salonbook/services/schedule"
	"salonbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const friday = "2024-05-17"

func newTestService() (*DefaultMasterService, *memSlots) {
	slots := newMemSlots()
	return &DefaultMasterService{
		Masters: newMemMasters(models.Master{ID: 1, Name: "Anna"}, models.Master{ID: 2, Name: "Boris"}),
		Slots:   slots,
		Visits:  &memVisits{},
		Policy:  schedule.DefaultPolicy(),
	}, slots
}

func TestMasterService_AvailableSlots_ExcludesBooked(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Reserve(ctx, 1, friday, "12:00", 7)
	require.NoError(t, err)
	_, err = svc.Reserve(ctx, 1, friday, "10:00", 8)
	require.NoError(t, err)

	sched, err := svc.AvailableSlots(ctx, 1, friday)
	require.NoError(t, err)

	assert.Equal(t, "Anna", sched.MasterName)
	assert.Equal(t, []string{"10:00", "12:00"}, sched.BookedTimes)
	assert.Equal(t, []string{"11:00", "13:00", "14:00", "15:00", "16:00", "17:00"}, sched.AvailableTimes)
	assert.Len(t, sched.AllSlots, 8)
	for _, b := range sched.BookedTimes {
		assert.NotContains(t, sched.AvailableTimes, b)
	}
}

func TestMasterService_AvailableSlots_Weekend(t *testing.T) {
	svc, _ := newTestService()

	sched, err := svc.AvailableSlots(context.Background(), 1, "2024-05-18")
	require.NoError(t, err)
	assert.Empty(t, sched.AvailableTimes)
	assert.Empty(t, sched.AllSlots)
}

func TestMasterService_AvailableSlots_Errors(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AvailableSlots(context.Background(), 99, friday)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	_, err = svc.AvailableSlots(context.Background(), 1, "17-05-2024")
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
}

func TestMasterService_Reserve_SecondClaimConflicts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Reserve(ctx, 1, friday, "12:00", 7)
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, 1, friday, "12:00", 8)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	// Same time, other master is independent.
	_, err = svc.Reserve(ctx, 2, friday, "12:00", 8)
	assert.NoError(t, err)
}

func TestMasterService_Reserve_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Reserve(ctx, 99, friday, "12:00", 7)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	_, err = svc.Reserve(ctx, 1, friday, "12:00", 0)
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))

	_, err = svc.Reserve(ctx, 1, friday, "noon", 7)
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
}

func TestMasterService_Reserve_ConcurrentExactlyOneWins(t *testing.T) {
	svc, slots := newTestService()
	ctx := context.Background()

	const workers = 32
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(client int) {
			defer wg.Done()
			_, err := svc.Reserve(ctx, 1, friday, "15:00", client)
			results <- err
		}(i + 1)
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case utils.KindOf(err) == utils.KindConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, workers-1, conflicts)

	booked, _ := slots.ListBooked(ctx, 1, friday)
	assert.Len(t, booked, 1)
}

func TestMasterService_Release_Idempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Reserve(ctx, 1, friday, "12:00", 7)
	require.NoError(t, err)

	released, err := svc.Release(ctx, 1, friday, "12:00")
	require.NoError(t, err)
	assert.True(t, released)

	released, err = svc.Release(ctx, 1, friday, "12:00")
	require.NoError(t, err)
	assert.False(t, released)

	sched, err := svc.AvailableSlots(ctx, 1, friday)
	require.NoError(t, err)
	assert.Contains(t, sched.AvailableTimes, "12:00")
}

func TestMasterService_RecordVisit_CompletedFreesSlot(t *testing.T) {
	svc, slots := newTestService()
	ctx := context.Background()

	_, err := svc.Reserve(ctx, 1, friday, "12:00", 7)
	require.NoError(t, err)

	visit, err := svc.RecordVisit(ctx, models.MasterVisit{MasterID: 1, ClientID: 7, ClientName: "Ivan", Date: friday, Time: "12:00"})
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, visit.Status)

	booked, _ := slots.ListBooked(ctx, 1, friday)
	assert.Empty(t, booked)

	history, err := svc.VisitHistory(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestMasterService_SeedDefaults(t *testing.T) {
	svc := &DefaultMasterService{Masters: newMemMasters(models.Master{ID: 1, Name: "Custom"})}

	require.NoError(t, svc.SeedDefaults(context.Background()))

	masters, err := svc.ListMasters(context.Background())
	require.NoError(t, err)
	require.Len(t, masters, 2)
	assert.Equal(t, "Custom", masters[0].Name)
	assert.Equal(t, "Boris", masters[1].Name)
}

func TestMasterService_ReleaseClaim_OnlyHolder(t *testing.T) {
	svc, slots := newTestService()
	ctx := context.Background()

	_, err := svc.Reserve(ctx, 1, friday, "12:00", 8)
	require.NoError(t, err)

	released, err := svc.ReleaseClaim(ctx, 1, friday, "12:00", 7)
	require.NoError(t, err)
	assert.False(t, released)
	booked, _ := slots.ListBooked(ctx, 1, friday)
	require.Len(t, booked, 1)
	assert.Equal(t, 8, booked[0].ClientID)

	released, err = svc.ReleaseClaim(ctx, 1, friday, "12:00", 8)
	require.NoError(t, err)
	assert.True(t, released)

	_, err = svc.ReleaseClaim(ctx, 1, friday, "12:00", 0)
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
}
