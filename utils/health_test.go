package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthMonitor_Refresh(t *testing.T) {
	m := NewHealthMonitor(map[string]HealthCheck{
		"mongo": func(ctx context.Context) error { return nil },
		"redis": func(ctx context.Context) error { return errors.New("down") },
	})
	assert.True(t, m.Status().CheckedAt.IsZero())

	status := m.Refresh(context.Background())

	assert.True(t, status.Checks["mongo"])
	assert.False(t, status.Checks["redis"])
	assert.False(t, status.Healthy())
	assert.Equal(t, status, m.Status())
}

func TestHealthStatus_EmptyIsHealthy(t *testing.T) {
	assert.True(t, HealthStatus{}.Healthy())
}
