package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Env               string `mapstructure:"APP_ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	Services          string `mapstructure:"SERVICES"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Listen ports, one per service.
	UserPort         string `mapstructure:"USER_PORT"`
	MasterPort       string `mapstructure:"MASTER_PORT"`
	BookingPort      string `mapstructure:"BOOKING_PORT"`
	ConfirmationPort string `mapstructure:"CONFIRMATION_PORT"`
	HistoryPort      string `mapstructure:"HISTORY_PORT"`
	RelayPort        string `mapstructure:"RELAY_PORT"`

	// Base URLs the services use to reach each other.
	UserServiceURL         string `mapstructure:"USER_SERVICE_URL"`
	MasterServiceURL       string `mapstructure:"MASTER_SERVICE_URL"`
	ConfirmationServiceURL string `mapstructure:"CONFIRMATION_SERVICE_URL"`
	HistoryServiceURL      string `mapstructure:"HISTORY_SERVICE_URL"`
	RelayServiceURL        string `mapstructure:"RELAY_SERVICE_URL"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisRelayDB  int    `mapstructure:"REDIS_RELAY_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`
	RelayBackend  string `mapstructure:"RELAY_BACKEND"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	UpstreamTimeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	AdvisoryTimeout time.Duration `mapstructure:"ADVISORY_TIMEOUT"`

	// Working-day shape.
	ScheduleStartHour  int    `mapstructure:"SCHEDULE_START_HOUR"`
	ScheduleSlotCount  int    `mapstructure:"SCHEDULE_SLOT_COUNT"`
	ScheduleClosedDays string `mapstructure:"SCHEDULE_CLOSED_DAYS"`
	DisplayLocale      string `mapstructure:"DISPLAY_LOCALE"`

	ReconcileEnabled bool          `mapstructure:"RECONCILE_ENABLED"`
	ReservationHold  time.Duration `mapstructure:"RESERVATION_HOLD"`
	PollMaxWait      time.Duration `mapstructure:"POLL_MAX_WAIT"`
}

// Service names accepted by SERVICES.
const (
	ServiceUser         = "user"
	ServiceMaster       = "master"
	ServiceBooking      = "booking"
	ServiceConfirmation = "confirmation"
	ServiceHistory      = "history"
	ServiceRelay        = "relay"
)

var allServices = []string{
	ServiceUser, ServiceMaster, ServiceBooking, ServiceConfirmation, ServiceHistory, ServiceRelay,
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVICES", "all")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)

	v.SetDefault("USER_PORT", "5000")
	v.SetDefault("MASTER_PORT", "5001")
	v.SetDefault("BOOKING_PORT", "5002")
	v.SetDefault("CONFIRMATION_PORT", "5003")
	v.SetDefault("HISTORY_PORT", "5004")
	v.SetDefault("RELAY_PORT", "5005")

	v.SetDefault("USER_SERVICE_URL", "http://localhost:5000")
	v.SetDefault("MASTER_SERVICE_URL", "http://localhost:5001")
	v.SetDefault("CONFIRMATION_SERVICE_URL", "http://localhost:5003")
	v.SetDefault("HISTORY_SERVICE_URL", "http://localhost:5004")
	v.SetDefault("RELAY_SERVICE_URL", "http://localhost:5005")

	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "salonbook")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_RELAY_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("RELAY_BACKEND", "memory")

	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TTL", "24h")

	v.SetDefault("UPSTREAM_TIMEOUT", "5s")
	v.SetDefault("ADVISORY_TIMEOUT", "3s")

	v.SetDefault("SCHEDULE_START_HOUR", 10)
	v.SetDefault("SCHEDULE_SLOT_COUNT", 8)
	v.SetDefault("SCHEDULE_CLOSED_DAYS", "saturday,sunday")
	v.SetDefault("DISPLAY_LOCALE", "ru")

	v.SetDefault("RECONCILE_ENABLED", false)
	v.SetDefault("RESERVATION_HOLD", "10m")
	v.SetDefault("POLL_MAX_WAIT", "30s")
}

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// EnabledServices expands SERVICES into the list of service names to launch.
func (c Config) EnabledServices() ([]string, error) {
	raw := strings.TrimSpace(strings.ToLower(c.Services))
	if raw == "" || raw == "all" {
		return append([]string(nil), allServices...), nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		if !isKnownService(name) {
			return nil, fmt.Errorf("unknown service %q in SERVICES", name)
		}
		seen[name] = true
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("SERVICES selects no service")
	}
	return out, nil
}

// Port returns the listen port configured for the named service.
func (c Config) Port(service string) string {
	switch service {
	case ServiceUser:
		return c.UserPort
	case ServiceMaster:
		return c.MasterPort
	case ServiceBooking:
		return c.BookingPort
	case ServiceConfirmation:
		return c.ConfirmationPort
	case ServiceHistory:
		return c.HistoryPort
	case ServiceRelay:
		return c.RelayPort
	}
	return ""
}

// ClosedDayNames splits SCHEDULE_CLOSED_DAYS.
func (c Config) ClosedDayNames() []string {
	var out []string
	for _, d := range strings.Split(c.ScheduleClosedDays, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

func isKnownService(name string) bool {
	for _, s := range allServices {
		if s == name {
			return true
		}
	}
	return false
}
