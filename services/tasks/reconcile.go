package tasks

import (
	"encoding/json"
	"time"

	"salonbook/models"

	"github.com/hibiken/asynq"
)

const TypeReconcileReservation = "reservation:reconcile"

// NewReconcileTask builds a task that checks the claim once hold has passed.
func NewReconcileTask(claim models.SlotClaim, hold time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(claim)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReconcileReservation, b)
	opts := []asynq.Option{asynq.ProcessIn(hold), asynq.MaxRetry(3)}

	return task, opts, nil
}

// ParseReconcileTask decodes the claim carried by a reconcile task.
func ParseReconcileTask(task *asynq.Task) (models.SlotClaim, error) {
	var claim models.SlotClaim
	err := json.Unmarshal(task.Payload(), &claim)
	return claim, err
}
