package grpc

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Probe проверяет одну зависимость: БД, Redis и т.п.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthReporter выставляет статус общего сервиса ("") по результатам проверок зависимостей.
type HealthReporter struct {
	health *health.Server
	logger logger.Logger

	mu       sync.Mutex
	shutdown bool
}

func NewHealthReporter(h *health.Server, logger logger.Logger) *HealthReporter {
	return &HealthReporter{health: h, logger: logger}
}

func (h *HealthReporter) SetServing() {
	h.set(healthpb.HealthCheckResponse_SERVING)
}

// Shutdown переводит сервис в NOT_SERVING навсегда: дальнейшие проверки статус не меняют.
func (h *HealthReporter) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.shutdown = true
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
}

func (h *HealthReporter) set(status healthpb.HealthCheckResponse_ServingStatus) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.shutdown {
		return
	}
	h.health.SetServingStatus("", status)
}

// Monitor раз в interval прогоняет probes до отмены ctx.
func (h *HealthReporter) Monitor(ctx context.Context, interval time.Duration, probes ...Probe) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		h.set(h.checkAll(ctx, interval, probes))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *HealthReporter) checkAll(ctx context.Context, timeout time.Duration, probes []Probe) healthpb.HealthCheckResponse_ServingStatus {
	for _, p := range probes {
		checkCtx, cancel := context.WithTimeout(ctx, timeout)
		err := p.Check(checkCtx)
		cancel()

		if err != nil {
			h.logger.Warnf("health probe %s failed: %v", p.Name, err)
			return healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	return healthpb.HealthCheckResponse_SERVING
}
