package master

import (
	"context"
	"sort"
	"sync"

	"salonbook/models"
)

type memMasters struct {
	byID map[int]models.Master
}

func newMemMasters(ms ...models.Master) *memMasters {
	r := &memMasters{byID: map[int]models.Master{}}
	for _, m := range ms {
		r.byID[m.ID] = m
	}
	return r
}

func (r *memMasters) GetByID(ctx context.Context, id int) (*models.Master, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memMasters) List(ctx context.Context) ([]models.Master, error) {
	out := make([]models.Master, 0, len(r.byID))
	for _, m := range r.byID {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memMasters) Upsert(ctx context.Context, m *models.Master) error {
	if _, ok := r.byID[m.ID]; !ok {
		r.byID[m.ID] = *m
	}
	return nil
}

type unitKey struct {
	masterID   int
	date, time string
}

type memSlots struct {
	mu     sync.Mutex
	claims map[unitKey]models.BookedSlot
	nextID int64
}

func newMemSlots() *memSlots {
	return &memSlots{claims: map[unitKey]models.BookedSlot{}}
}

func (r *memSlots) ListBooked(ctx context.Context, masterID int, date string) ([]models.BookedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BookedSlot
	for k, v := range r.claims {
		if k.masterID == masterID && k.date == date {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memSlots) ListByMaster(ctx context.Context, masterID int) ([]models.BookedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BookedSlot
	for k, v := range r.claims {
		if k.masterID == masterID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memSlots) InsertIfAbsent(ctx context.Context, slot *models.BookedSlot) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := unitKey{slot.MasterID, slot.Date, slot.Time}
	if _, taken := r.claims[k]; taken {
		return false, nil
	}
	r.nextID++
	slot.ID = r.nextID
	r.claims[k] = *slot
	return true, nil
}

func (r *memSlots) Delete(ctx context.Context, masterID int, date, tm string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := unitKey{masterID, date, tm}
	if _, ok := r.claims[k]; !ok {
		return false, nil
	}
	delete(r.claims, k)
	return true, nil
}

func (r *memSlots) DeleteClaim(ctx context.Context, masterID int, date, tm string, clientID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := unitKey{masterID, date, tm}
	if c, ok := r.claims[k]; !ok || c.ClientID != clientID {
		return false, nil
	}
	delete(r.claims, k)
	return true, nil
}

type memVisits struct {
	visits []models.MasterVisit
}

func (r *memVisits) Create(ctx context.Context, v *models.MasterVisit) error {
	v.ID = int64(len(r.visits) + 1)
	r.visits = append(r.visits, *v)
	return nil
}

func (r *memVisits) ListByMaster(ctx context.Context, masterID int) ([]models.MasterVisit, error) {
	var out []models.MasterVisit
	for _, v := range r.visits {
		if v.MasterID == masterID {
			out = append(out, v)
		}
	}
	return out, nil
}
