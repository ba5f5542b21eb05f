package main

import (
	"context"
	"fmt"
	"time"

	"salonbook/clients"
	"salonbook/config"
	"salonbook/cron"
	"salonbook/database"
	bookingRepo "salonbook/database/repository/booking"
	historyRepo "salonbook/database/repository/history"
	masterRepo "salonbook/database/repository/master"
	userRepo "salonbook/database/repository/user"
	"salonbook/handlers"
	"salonbook/routes"
	"salonbook/services/booking"
	"salonbook/services/confirmation"
	"salonbook/services/history"
	"salonbook/services/master"
	"salonbook/services/notification"
	"salonbook/services/schedule"
	"salonbook/services/user"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// app wires the services that run in this process. Shared resources are opened
// on first use so a process running only the booking service never touches Mongo.
type app struct {
	cfg    config.Config
	policy schedule.Policy

	db      *mongo.Database
	ids     *database.Sequence
	redis   []*redis.Client
	watcher *cron.ReservationWatcher
	worker  *asynq.Server
}

type indexed interface {
	EnsureIndexes(ctx context.Context) error
}

func (a *app) mongo(ctx context.Context) (*mongo.Database, error) {
	if a.db != nil {
		return a.db, nil
	}
	if err := database.InitDB(ctx); err != nil {
		return nil, err
	}
	a.db = database.Database()
	a.ids = database.NewSequence(a.db)
	return a.db, nil
}

func (a *app) mongoHealth() *utils.HealthMonitor {
	return utils.NewHealthMonitor(map[string]utils.HealthCheck{"mongo": database.Ping})
}

func ensureIndexes(ctx context.Context, repos ...indexed) error {
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

// build creates the gin engine of one service.
func (a *app) build(ctx context.Context, name string) (*gin.Engine, error) {
	r := routes.NewEngine(name, a.cfg.MaxRequestsPerMin)
	hb := &handlers.HandlerBundle{}

	var (
		health gin.HandlerFunc
		err    error
	)
	switch name {
	case config.ServiceUser:
		health, err = a.buildUser(ctx, hb)
	case config.ServiceMaster:
		health, err = a.buildMaster(ctx, hb)
	case config.ServiceBooking:
		health, err = a.buildBooking(ctx, hb)
	case config.ServiceConfirmation:
		health, err = a.buildConfirmation(ctx, hb)
	case config.ServiceHistory:
		health, err = a.buildHistory(ctx, hb)
	case config.ServiceRelay:
		health, err = a.buildRelay(hb)
	default:
		err = fmt.Errorf("unknown service %q", name)
	}
	if err != nil {
		return nil, err
	}

	routes.RegisterHealthRoute(r, health)
	if err := routes.RegisterRoutes(name, r, hb); err != nil {
		return nil, err
	}
	return r, nil
}

func (a *app) buildUser(ctx context.Context, hb *handlers.HandlerBundle) (gin.HandlerFunc, error) {
	db, err := a.mongo(ctx)
	if err != nil {
		return nil, err
	}
	repo := userRepo.NewMongoUserRepo(db, a.ids)
	if err := ensureIndexes(ctx, repo); err != nil {
		return nil, err
	}

	svc := &user.DefaultUserService{
		Repo:     repo,
		Secret:   []byte(a.cfg.JWTSecret),
		TokenTTL: a.cfg.JWTTTL,
	}
	if err := svc.SeedDefaults(ctx); err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}

	hb.User = &handlers.UserHandler{UserService: svc}
	return handlers.StorageHealthHandler(config.ServiceUser, a.mongoHealth()), nil
}

func (a *app) buildMaster(ctx context.Context, hb *handlers.HandlerBundle) (gin.HandlerFunc, error) {
	db, err := a.mongo(ctx)
	if err != nil {
		return nil, err
	}
	masters := masterRepo.NewMongoMasterRepo(db)
	slots := masterRepo.NewMongoSlotRepo(db, a.ids)
	visits := masterRepo.NewMongoVisitRepo(db, a.ids)
	if err := ensureIndexes(ctx, masters, slots, visits); err != nil {
		return nil, err
	}

	svc := &master.DefaultMasterService{
		Masters: masters,
		Slots:   slots,
		Visits:  visits,
		Policy:  a.policy,
	}
	if err := svc.SeedDefaults(ctx); err != nil {
		return nil, fmt.Errorf("seed masters: %w", err)
	}

	hb.Master = &handlers.MasterHandler{Service: svc}
	return handlers.StorageHealthHandler(config.ServiceMaster, a.mongoHealth()), nil
}

func (a *app) buildBooking(ctx context.Context, hb *handlers.HandlerBundle) (gin.HandlerFunc, error) {
	masterClient := clients.NewMasterClient(a.cfg.MasterServiceURL, a.cfg.UpstreamTimeout)
	confirmationClient := clients.NewConfirmationClient(a.cfg.ConfirmationServiceURL, a.cfg.UpstreamTimeout)
	historyClient := clients.NewHistoryClient(a.cfg.HistoryServiceURL, a.cfg.AdvisoryTimeout)
	relayClient := clients.NewRelayClient(a.cfg.RelayServiceURL, a.cfg.AdvisoryTimeout)

	svc := &booking.DefaultBookingService{
		Masters:      masterClient,
		Confirmation: confirmationClient,
		History:      historyClient,
		Notifier:     relayClient,
		Locale:       a.cfg.DisplayLocale,
	}
	if a.cfg.ReconcileEnabled {
		a.watcher = cron.NewReservationWatcher(a.cfg.ReservationHold)
		svc.Watcher = a.watcher
		a.worker = cron.InitReconcileWorker(ctx, svc)
		utils.GetLogger().Info("Reservation reconciliation enabled", zap.Duration("hold", a.cfg.ReservationHold))
	}

	hb.Booking = &handlers.BookingHandler{Service: svc}

	monitor := utils.NewHealthMonitor(map[string]utils.HealthCheck{
		masterClient.Name():       masterClient.Ping,
		confirmationClient.Name(): confirmationClient.Ping,
		historyClient.Name():      historyClient.Ping,
		relayClient.Name():        relayClient.Ping,
	})
	return handlers.UpstreamHealthHandler(config.ServiceBooking, monitor), nil
}

func (a *app) buildConfirmation(ctx context.Context, hb *handlers.HandlerBundle) (gin.HandlerFunc, error) {
	db, err := a.mongo(ctx)
	if err != nil {
		return nil, err
	}
	repo := bookingRepo.NewMongoBookingRepo(db, a.ids)
	if err := ensureIndexes(ctx, repo); err != nil {
		return nil, err
	}

	svc := &confirmation.DefaultConfirmationService{
		Repo:  repo,
		Users: clients.NewUserClient(a.cfg.UserServiceURL, a.cfg.UpstreamTimeout),
		Slots: clients.NewMasterClient(a.cfg.MasterServiceURL, a.cfg.UpstreamTimeout),
	}
	hb.Confirmation = &handlers.ConfirmationHandler{Service: svc}
	return handlers.StorageHealthHandler(config.ServiceConfirmation, a.mongoHealth()), nil
}

func (a *app) buildHistory(ctx context.Context, hb *handlers.HandlerBundle) (gin.HandlerFunc, error) {
	db, err := a.mongo(ctx)
	if err != nil {
		return nil, err
	}
	sessions := historyRepo.NewMongoSessionRepo(db, a.ids)
	visits := historyRepo.NewMongoVisitRepo(db, a.ids)
	if err := ensureIndexes(ctx, sessions, visits); err != nil {
		return nil, err
	}

	svc := &history.DefaultHistoryService{
		Sessions: sessions,
		Visits:   visits,
		Masters:  clients.NewMasterClient(a.cfg.MasterServiceURL, a.cfg.UpstreamTimeout),
	}
	hb.History = &handlers.HistoryHandler{Service: svc}
	return handlers.StorageHealthHandler(config.ServiceHistory, a.mongoHealth()), nil
}

func (a *app) buildRelay(hb *handlers.HandlerBundle) (gin.HandlerFunc, error) {
	checks := map[string]utils.HealthCheck{}

	var store notification.Store
	switch a.cfg.RelayBackend {
	case "", "memory":
		store = notification.NewMemoryStore()
	case "redis":
		client, err := utils.NewRedisClient(a.cfg.RedisRelayDB)
		if err != nil {
			return nil, err
		}
		a.redis = append(a.redis, client)
		store = notification.NewRedisStore(client)
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	default:
		return nil, fmt.Errorf("unknown RELAY_BACKEND %q", a.cfg.RelayBackend)
	}

	hb.Relay = &handlers.RelayHandler{Service: notification.NewRelayService(store, a.cfg.PollMaxWait)}
	return handlers.StorageHealthHandler(config.ServiceRelay, utils.NewHealthMonitor(checks)), nil
}

func (a *app) close() {
	logger := utils.GetLogger()
	if a.worker != nil {
		a.worker.Shutdown()
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warn("Failed to close task client", zap.Error(err))
		}
	}
	for _, c := range a.redis {
		_ = c.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Close(ctx); err != nil {
		logger.Warn("Failed to disconnect from MongoDB", zap.Error(err))
	}
}
