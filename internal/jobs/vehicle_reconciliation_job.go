package jobs

import (
	"context"
	"log/slog"

	"ricetrade/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// VehicleReconciler frees vehicles left unavailable with no order holding them.
type VehicleReconciler interface {
	Handle(ctx context.Context) (commands.ReconcileVehiclesReport, error)
}

// ReleaseObserver is told how many vehicles a run released.
type ReleaseObserver interface {
	ObserveReleased(n int)
}

// VehicleReconciliationJob runs the reconciler on a cron schedule.
type VehicleReconciliationJob struct {
	reconciler VehicleReconciler
	observer   ReleaseObserver
	spec       string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewVehicleReconciliationJob creates the job. The schedule uses the six field
// cron format with seconds, or a descriptor such as "@every 5m".
func NewVehicleReconciliationJob(
	reconciler VehicleReconciler,
	observer ReleaseObserver,
	spec string,
	logger *slog.Logger,
) *VehicleReconciliationJob {
	return &VehicleReconciliationJob{
		reconciler: reconciler,
		observer:   observer,
		spec:       spec,
		cron:       cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:     logger.With("component", "vehicle_reconciliation_job"),
	}
}

func (j *VehicleReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Vehicle reconciliation job started", "schedule", j.spec)
	return nil
}

// Run performs one reconciliation pass.
func (j *VehicleReconciliationJob) Run(ctx context.Context) {
	report, err := j.reconciler.Handle(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Vehicle reconciliation failed", "error", err)
		return
	}
	if j.observer != nil {
		j.observer.ObserveReleased(report.Released)
	}
	if report.Released > 0 {
		j.logger.InfoContext(ctx, "Vehicle reconciliation finished",
			"checked", report.Checked, "released", report.Released)
	}
}

// Stop waits for a running pass to finish.
func (j *VehicleReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Vehicle reconciliation job stopped")
}
