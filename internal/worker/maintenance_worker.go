package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campus-it/lab-support/internal/service"
)

// StartMaintenanceWorker runs the periodic-maintenance sweep on a ticker
// until the context is cancelled. The sweep's day lock makes the worker and
// the supervisor endpoint safe to run side by side.
func StartMaintenanceWorker(ctx context.Context, svc *service.MaintenanceService, logger *zap.Logger, tick time.Duration) {
	if svc == nil || tick <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		run := func() {
			created, err := svc.RunSweep(ctx)
			if err != nil {
				logger.Error("maintenance sweep failed", zap.Error(err))
				return
			}
			if created > 0 {
				logger.Info("maintenance worker created reports", zap.Int("count", created))
			}
		}

		run()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
