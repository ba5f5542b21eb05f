package cron

import (
	"context"
	"time"

	"salonbook/models"
	"salonbook/services/tasks"

	"github.com/hibiken/asynq"
)

// ReservationWatcher schedules a reconcile check for every new reservation.
type ReservationWatcher struct {
	client *asynq.Client
	hold   time.Duration
}

func NewReservationWatcher(hold time.Duration) *ReservationWatcher {
	return &ReservationWatcher{client: asynq.NewClient(redisOpts()), hold: hold}
}

func (w *ReservationWatcher) Watch(ctx context.Context, claim models.SlotClaim) error {
	task, opts, err := tasks.NewReconcileTask(claim, w.hold)
	if err != nil {
		return err
	}
	_, err = w.client.EnqueueContext(ctx, task, opts...)
	return err
}

func (w *ReservationWatcher) Close() error {
	return w.client.Close()
}
