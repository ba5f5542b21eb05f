package history

import (
	"context"
	"testing"
	"time"

	"salonbook/models"
	"salonbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Today is Monday 2024-05-13; tomorrow is Tuesday 2024-05-14.
func newService() (*DefaultHistoryService, *memSessions, *memVisits, *stubMasters) {
	sessions, visits, masters := &memSessions{}, &memVisits{}, &stubMasters{free: map[string][]string{}}
	return &DefaultHistoryService{
		Sessions: sessions,
		Visits:   visits,
		Masters:  masters,
		Clock:    func() time.Time { return time.Date(2024, 5, 13, 9, 0, 0, 0, time.UTC) },
	}, sessions, visits, masters
}

func session(date, tm string) models.SessionRequest {
	return models.SessionRequest{UserID: 7, MasterID: 1, MasterName: "Anna", Date: date, Time: tm}
}

func TestHistoryService_AddSession(t *testing.T) {
	svc, _, _, _ := newService()

	s, err := svc.AddSession(context.Background(), session("2024-05-13", "14:00"))
	require.NoError(t, err)
	assert.Equal(t, models.SessionPending, s.Status)
	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), s.SessionDate)

	_, err = svc.AddSession(context.Background(), session("2024-05-13", "14:00"))
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	_, err = svc.AddSession(context.Background(), models.SessionRequest{UserID: 7, MasterID: 1, Date: "2024-05-13"})
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))

	bad := session("2024-05-14", "10:00")
	bad.Status = "archived"
	_, err = svc.AddSession(context.Background(), bad)
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
}

func TestHistoryService_UserSessions_LastWeek(t *testing.T) {
	svc, _, _, _ := newService()
	for _, d := range []string{"2024-05-01", "2024-05-06", "2024-05-10", "2024-05-20"} {
		_, err := svc.AddSession(context.Background(), session(d, "10:00"))
		require.NoError(t, err)
	}

	got, err := svc.UserSessions(context.Background(), 7)
	require.NoError(t, err)
	var dates []string
	for _, s := range got {
		dates = append(dates, s.Date)
	}
	assert.ElementsMatch(t, []string{"2024-05-06", "2024-05-10", "2024-05-20"}, dates)
}

func TestHistoryService_UpdateSession(t *testing.T) {
	svc, _, visits, masters := newService()
	ctx := context.Background()

	done, err := svc.AddSession(ctx, session("2024-05-10", "12:00"))
	require.NoError(t, err)
	dropped, err := svc.AddSession(ctx, session("2024-05-15", "16:00"))
	require.NoError(t, err)

	updated, err := svc.UpdateSession(ctx, done.ID, models.SessionCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, updated.Status)
	require.Len(t, visits.rows, 1)
	assert.Equal(t, 4, visits.rows[0].DayOfWeek) // Friday

	_, err = svc.UpdateSession(ctx, done.ID, models.SessionCancelled)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	_, err = svc.UpdateSession(ctx, dropped.ID, models.SessionCancelled)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-15 16:00"}, masters.released)

	_, err = svc.UpdateSession(ctx, 99, models.SessionCompleted)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	_, err = svc.UpdateSession(ctx, dropped.ID, models.SessionPending)
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
}

func TestHistoryService_CompleteVisit(t *testing.T) {
	svc, sessions, visits, _ := newService()
	ctx := context.Background()

	_, err := svc.AddSession(ctx, session("2024-05-10", "12:00"))
	require.NoError(t, err)

	v, err := svc.CompleteVisit(ctx, session("2024-05-10", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, v.Status)
	assert.Len(t, visits.rows, 1)
	assert.Equal(t, models.SessionCompleted, sessions.rows[0].Status)
}

func TestHistoryService_Recommend_SameTime(t *testing.T) {
	svc, _, _, masters := newService()
	ctx := context.Background()
	_, err := svc.CompleteVisit(ctx, session("2024-05-06", "12:00"))
	require.NoError(t, err)
	_, err = svc.CompleteVisit(ctx, session("2024-05-10", "14:00"))
	require.NoError(t, err)
	masters.free["2024-05-14"] = []string{"10:00", "14:00"}

	rec, err := svc.Recommend(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "2024-05-14", rec.Date)
	assert.Equal(t, "14:00", rec.Time)
	assert.Equal(t, 1, rec.MasterID)
	assert.Contains(t, rec.Message, "14.05.2024")
}

func TestHistoryService_Recommend_NearbyTime(t *testing.T) {
	svc, _, _, masters := newService()
	_, err := svc.CompleteVisit(context.Background(), session("2024-05-10", "14:00"))
	require.NoError(t, err)
	// 11:00 is three hours away; 12:00 and 16:00 are both within two, first listed wins.
	masters.free["2024-05-14"] = []string{"11:00", "16:00", "12:00"}

	rec, err := svc.Recommend(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "16:00", rec.Time)
}

func TestHistoryService_Recommend_None(t *testing.T) {
	svc, _, _, masters := newService()

	rec, err := svc.Recommend(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = svc.CompleteVisit(context.Background(), session("2024-05-10", "14:00"))
	require.NoError(t, err)
	masters.free["2024-05-14"] = []string{"10:00", "17:00"}

	rec, err = svc.Recommend(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, rec)

	masters.err = errUpstream
	rec, err = svc.Recommend(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestHistoryService_Recommend_BackfillsFromSession(t *testing.T) {
	svc, sessions, visits, masters := newService()
	ctx := context.Background()

	_, err := svc.AddSession(ctx, session("2024-05-10", "15:00"))
	require.NoError(t, err)
	sessions.rows[0].Status = models.SessionCompleted // completed before visits were logged
	masters.free["2024-05-14"] = []string{"15:00"}

	rec, err := svc.Recommend(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "15:00", rec.Time)

	require.Len(t, visits.rows, 1)
	assert.Equal(t, "2024-05-10", visits.rows[0].Date)
	assert.Equal(t, 4, visits.rows[0].DayOfWeek)

	// Second call reads the materialized visit.
	_, err = svc.Recommend(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, visits.rows, 1)
}
