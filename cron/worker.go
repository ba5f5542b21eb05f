package cron

import (
	"context"
	"time"

	"salonbook/config"
	"salonbook/models"
	"salonbook/services/tasks"
	"salonbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Reconciler frees reservations that never got confirmed.
type Reconciler interface {
	ReconcileReservation(ctx context.Context, claim models.SlotClaim) (bool, error)
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewServeMux routes reconcile tasks to rec.
func NewServeMux(rec Reconciler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReconcileReservation, HandleReconcileTask(rec))
	return mux
}

// InitReconcileWorker runs the async worker in background until ctx is done.
func InitReconcileWorker(ctx context.Context, rec Reconciler) *asynq.Server {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: newAsynqLogger(),
		},
	)
	mux := NewServeMux(rec)

	go monitorRedisConnection(ctx)

	go func() {
		logger := utils.GetLogger()
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				logger.Info("Reconcile worker started")
				return
			}
			logger.Error("Failed to start reconcile worker", zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Giving up on reconcile worker; unconfirmed reservations will not be released")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()

	return srv
}

func HandleReconcileTask(rec Reconciler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()
		claim, err := tasks.ParseReconcileTask(task)
		if err != nil {
			logger.Error("Invalid reconcile payload", zap.Error(err))
			return asynq.SkipRetry
		}

		released, err := rec.ReconcileReservation(ctx, claim)
		if err != nil {
			logger.Warn("Reservation check failed", zap.Any("claim", claim), zap.Error(err))
			return err
		}
		logger.Debug("Reservation checked", zap.Any("claim", claim), zap.Bool("released", released))
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				utils.GetLogger().Warn("Queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
