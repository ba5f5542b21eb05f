package history

import (
	"context"
	"sort"
	"time"

	"salonbook/models"
	"salonbook/utils"
)

type memSessions struct {
	rows []models.SessionRecord
}

func (r *memSessions) Create(ctx context.Context, s *models.SessionRecord) (bool, error) {
	for _, x := range r.rows {
		if x.UserID == s.UserID && x.MasterID == s.MasterID && x.Date == s.Date && x.Time == s.Time {
			return false, nil
		}
	}
	s.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, *s)
	return true, nil
}

func (r *memSessions) GetByID(ctx context.Context, id int64) (*models.SessionRecord, error) {
	for _, x := range r.rows {
		if x.ID == id {
			return &x, nil
		}
	}
	return nil, nil
}

func (r *memSessions) FindByUnit(ctx context.Context, userID, masterID int, date, tm string) (*models.SessionRecord, error) {
	for _, x := range r.rows {
		if x.UserID == userID && x.MasterID == masterID && x.Date == date && x.Time == tm {
			return &x, nil
		}
	}
	return nil, nil
}

func (r *memSessions) ListByUserSince(ctx context.Context, userID int, since time.Time) ([]models.SessionRecord, error) {
	out := []models.SessionRecord{}
	for _, x := range r.rows {
		if x.UserID == userID && !x.SessionDate.Before(since) {
			out = append(out, x)
		}
	}
	return out, nil
}

func (r *memSessions) TransitionStatus(ctx context.Context, id int64, from, to string, at time.Time) (*models.SessionRecord, error) {
	for i := range r.rows {
		if r.rows[i].ID == id && r.rows[i].Status == from {
			r.rows[i].Status = to
			r.rows[i].UpdatedAt = at
			s := r.rows[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (r *memSessions) LatestCompleted(ctx context.Context, userID int) (*models.SessionRecord, error) {
	var best *models.SessionRecord
	for i := range r.rows {
		x := r.rows[i]
		if x.UserID != userID || x.Status != models.SessionCompleted {
			continue
		}
		if best == nil || x.Date+x.Time > best.Date+best.Time {
			best = &x
		}
	}
	return best, nil
}

type memVisits struct {
	rows      []models.VisitRecord
	createErr error
}

func (r *memVisits) Create(ctx context.Context, v *models.VisitRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	v.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, *v)
	return nil
}

func (r *memVisits) ListByUser(ctx context.Context, userID int) ([]models.VisitRecord, error) {
	out := []models.VisitRecord{}
	for _, v := range r.rows {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date+out[i].Time > out[j].Date+out[j].Time })
	return out, nil
}

func (r *memVisits) LatestCompleted(ctx context.Context, userID int) (*models.VisitRecord, error) {
	all, _ := r.ListByUser(ctx, userID)
	for _, v := range all {
		if v.Status == models.SessionCompleted {
			return &v, nil
		}
	}
	return nil, nil
}

// stubMasters serves fixed free times per date.
type stubMasters struct {
	free     map[string][]string
	err      error
	released []string
}

func (m *stubMasters) GetSchedule(ctx context.Context, masterID int, date string) (*models.Schedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Schedule{MasterID: masterID, MasterName: "Anna", Date: date, AvailableTimes: m.free[date]}, nil
}

func (m *stubMasters) ReleaseSlot(ctx context.Context, masterID int, date, tm string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.released = append(m.released, date+" "+tm)
	return true, nil
}

var errUpstream = utils.Upstream("master service unavailable", nil)
