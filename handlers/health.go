package handlers

import (
	"net/http"
	"time"

	"salonbook/utils"

	"github.com/gin-gonic/gin"
)

// ServiceInfoHandler handles GET / with a banner naming the service.
func ServiceInfoHandler(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":   service,
			"status":    "running",
			"version":   "1.0",
			"timestamp": time.Now().UTC(),
		})
	}
}

// StorageHealthHandler handles GET /health for services that own storage.
// It answers 503 while any dependency is down.
func StorageHealthHandler(service string, monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := monitor.Refresh(c.Request.Context())
		code, state := http.StatusOK, "healthy"
		if !status.Healthy() {
			code, state = http.StatusServiceUnavailable, "unhealthy"
		}
		c.JSON(code, gin.H{
			"service":   service,
			"status":    state,
			"checks":    status.Checks,
			"timestamp": status.CheckedAt,
		})
	}
}

// UpstreamHealthHandler handles GET /health for the booking service: it reports each
// upstream and degrades instead of failing when one is unreachable.
func UpstreamHealthHandler(service string, monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := monitor.Refresh(c.Request.Context())
		upstreams := make(map[string]string, len(status.Checks))
		for name, ok := range status.Checks {
			if ok {
				upstreams[name] = "healthy"
			} else {
				upstreams[name] = "unreachable"
			}
		}
		state := "healthy"
		if !status.Healthy() {
			state = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"service":   service,
			"status":    state,
			"services":  upstreams,
			"timestamp": status.CheckedAt,
		})
	}
}
