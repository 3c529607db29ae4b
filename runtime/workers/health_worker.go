package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"chat-core/contract"
	"chat-core/domain/chat"

	"github.com/shirou/gopsutil/process"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// probeKey is never a valid room key, so probing reads nothing.
const probeKey = chat.RoomKey("health-probe")

// StatusSetter is satisfied by *health.Server.
type StatusSetter interface {
	SetServingStatus(service string, status healthpb.HealthCheckResponse_ServingStatus)
}

// HealthWorker reads the store every interval and reports the result as the gRPC
// serving status of service and of the server as a whole ("").
// It also logs the process footprint at debug level.
type HealthWorker struct {
	log      *slog.Logger
	store    contract.ChatStore
	status   StatusSetter
	service  string
	interval time.Duration
	proc     *process.Process
}

func NewHealthWorker(log *slog.Logger, store contract.ChatStore, status StatusSetter, service string, interval time.Duration) *HealthWorker {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Debug("Process metrics unavailable", "error", err)
	}
	return &HealthWorker{log: log, store: store, status: status, service: service, interval: interval, proc: proc}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.check(ctx)
	for {
		select {
		case <-ctx.Done():
			w.report(healthpb.HealthCheckResponse_NOT_SERVING)
			return nil
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *HealthWorker) check(ctx context.Context) {
	if _, err := w.store.ExistsByID(ctx, probeKey); err != nil {
		w.log.Error("Store probe failed", "error", err)
		w.report(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	w.report(healthpb.HealthCheckResponse_SERVING)
	w.sample()
}

func (w *HealthWorker) report(status healthpb.HealthCheckResponse_ServingStatus) {
	w.status.SetServingStatus("", status)
	w.status.SetServingStatus(w.service, status)
}

func (w *HealthWorker) sample() {
	if w.proc == nil {
		return
	}
	mem, err := w.proc.MemoryInfo()
	if err != nil {
		w.log.Debug("Error while reading process memory", "error", err)
		return
	}
	cpu, err := w.proc.CPUPercent()
	if err != nil {
		w.log.Debug("Error while reading process cpu", "error", err)
		return
	}
	w.log.Debug("Process footprint", "rss_bytes", mem.RSS, "cpu_percent", cpu)
}
