package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonbook/config"
	"salonbook/services/schedule"
	"salonbook/utils"

	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()
	cfg := config.AppConfig

	services, err := cfg.EnabledServices()
	if err != nil {
		logger.Fatal("main: invalid SERVICES", zap.Error(err))
	}
	policy, err := schedule.NewPolicy(cfg.ScheduleStartHour, cfg.ScheduleSlotCount, cfg.ClosedDayNames())
	if err != nil {
		logger.Fatal("main: invalid schedule configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &app{cfg: cfg, policy: policy}
	defer a.close()

	servers := make([]*http.Server, 0, len(services))
	for _, name := range services {
		router, err := a.build(ctx, name)
		if err != nil {
			logger.Fatal("main: failed to build service", zap.String("service", name), zap.Error(err))
		}
		srv := &http.Server{
			Addr:              "0.0.0.0:" + cfg.Port(name),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		servers = append(servers, srv)

		logger.Info("Starting service", zap.String("service", name), zap.String("addr", srv.Addr))
		go func(name string, srv *http.Server) {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("main: server failed to start", zap.String("service", name), zap.Error(err))
			}
		}(name, srv)
	}

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: services are shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("main: server forced to shutdown", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}

	logger.Info("main: services stopped gracefully")
}
