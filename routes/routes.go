package routes

import (
	"fmt"
	"time"

	"salonbook/config"
	"salonbook/handlers"
	"salonbook/middleware"
	"salonbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewEngine builds a gin engine with the middleware every service shares.
func NewEngine(service string, maxRequestsPerMin int) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(service))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))

	r.GET("/", handlers.ServiceInfoHandler(service))
	return r
}

// RegisterUserRoutes registers user endpoints.
func RegisterUserRoutes(r *gin.Engine, h *handlers.UserHandler) {
	r.POST("/register", h.RegisterUserHandler)
	r.POST("/login", h.LoginHandler)
	r.GET("/user/:id", h.GetUserByIDHandler)
	r.GET("/users", h.ListUsersHandler)

	admin := r.Group("/admin")
	{
		admin.PUT("/update_user/:id", h.UpdateUserHandler)
		admin.DELETE("/delete_user/:id", h.DeleteUserHandler)
		admin.GET("/stats", h.StatsHandler)
	}
}

// RegisterMasterRoutes registers the master registry and slot endpoints.
func RegisterMasterRoutes(r *gin.Engine, h *handlers.MasterHandler) {
	r.GET("/masters", h.ListMastersHandler)
	r.GET("/master/:id", h.GetMasterHandler)
	r.GET("/schedule/:id/:date", h.ScheduleHandler)
	r.POST("/book_slot/:id/:date/:time", h.BookSlotHandler)
	r.DELETE("/free_slot/:id/:date/:time", h.FreeSlotHandler)
	r.GET("/master_bookings_api/:id", h.MasterSlotsHandler)
	r.POST("/add_master_visit", h.AddVisitHandler)
	r.GET("/master_visit_history/:id", h.VisitHistoryHandler)
}

// RegisterBookingRoutes sets up the endpoints for the booking orchestrator.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	r.POST("/book", h.BookHandler)
	r.POST("/quick_book", h.QuickBookHandler)
	r.GET("/check_availability/:id/:date/:time", h.CheckAvailabilityHandler)
	r.GET("/resource_availability/:id", h.MasterAvailabilityHandler)
	r.GET("/get_master_availability/:id", h.MasterAvailabilityHandler)
}

func RegisterConfirmationRoutes(r *gin.Engine, h *handlers.ConfirmationHandler) {
	r.POST("/confirm", h.ConfirmHandler)
	r.GET("/active_bookings", h.ActiveBookingsHandler)
	r.GET("/user_bookings/:id", h.UserBookingsHandler)
	r.GET("/master_bookings/:id", h.MasterBookingsHandler)
	r.GET("/booking_lookup", h.LookupHandler)
	r.DELETE("/cancel_booking/:id", h.CancelHandler)
}

func RegisterHistoryRoutes(r *gin.Engine, h *handlers.HistoryHandler) {
	r.POST("/add_session", h.AddSessionHandler)
	r.GET("/user_sessions/:id", h.UserSessionsHandler)
	r.PUT("/update_session/:id", h.UpdateSessionHandler)
	r.POST("/complete_visit", h.CompleteVisitHandler)
	r.GET("/get_recommendation/:id", h.RecommendationHandler)
}

func RegisterRelayRoutes(r *gin.Engine, h *handlers.RelayHandler) {
	r.POST("/subscribe", h.SubscribeHandler)
	r.POST("/unsubscribe", h.UnsubscribeHandler)
	r.POST("/send", h.SendHandler)
	r.POST("/broadcast", h.BroadcastHandler)
	r.GET("/poll/:id", h.PollHandler)
	r.GET("/status/:id", h.StatusHandler)
	r.GET("/stats", h.StatsHandler)
	r.POST("/booking_created", h.BookingCreatedHandler)
	r.POST("/booking_updated", h.BookingUpdatedHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, health gin.HandlerFunc) {
	r.GET("/health", health)
}

// RegisterRoutes registers the endpoints of one service.
func RegisterRoutes(service string, r *gin.Engine, hb *handlers.HandlerBundle) error {
	switch {
	case service == config.ServiceUser && hb.User != nil:
		RegisterUserRoutes(r, hb.User)
	case service == config.ServiceMaster && hb.Master != nil:
		RegisterMasterRoutes(r, hb.Master)
	case service == config.ServiceBooking && hb.Booking != nil:
		RegisterBookingRoutes(r, hb.Booking)
	case service == config.ServiceConfirmation && hb.Confirmation != nil:
		RegisterConfirmationRoutes(r, hb.Confirmation)
	case service == config.ServiceHistory && hb.History != nil:
		RegisterHistoryRoutes(r, hb.History)
	case service == config.ServiceRelay && hb.Relay != nil:
		RegisterRelayRoutes(r, hb.Relay)
	default:
		return fmt.Errorf("no handlers for service %q", service)
	}
	return nil
}
