package commands

import (
	"context"
	"log/slog"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/logistics"
)

// ReconcileVehiclesReport counts what one reconciliation pass did.
type ReconcileVehiclesReport struct {
	Checked  int
	Released int
}

// ReconcileVehiclesCommandHandler frees vehicles that are marked unavailable
// although no order in processing or in_transit holds them. Such vehicles are
// left behind by crashes between reservation and commit, or by data written
// outside the fulfillment core.
type ReconcileVehiclesCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewReconcileVehiclesCommandHandler(uowFactory UoWFactory, logger *slog.Logger) ReconcileVehiclesCommandHandler {
	return ReconcileVehiclesCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "reconcile_vehicles"),
	}
}

// Handle runs one pass in a single unit of work. The holder list read first
// only narrows the candidates: it can be stale by the time the fleet is
// read, so each release is decided again by ReleaseIdleVehicle against the
// orders current at the moment of the write. A candidate that turns out to
// be held, or already free, is skipped.
func (h ReconcileVehiclesCommandHandler) Handle(ctx context.Context) (ReconcileVehiclesReport, error) {
	var report ReconcileVehiclesReport

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return report, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	active, err := uow.OrderRepository().ListHoldingVehicles(ctx)
	if err != nil {
		return report, err
	}

	held := make(map[heldVehicle]struct{}, len(active))
	for _, o := range active {
		if l := o.Logistics(); l != nil {
			held[heldVehicle{providerID: l.ProviderID(), number: l.VehicleNumber()}] = struct{}{}
		}
	}

	providerRepo := uow.ProviderRepository()
	providers, err := providerRepo.GetAll(ctx)
	if err != nil {
		return report, err
	}

	for _, p := range providers {
		for _, v := range orphans(p, held) {
			report.Checked++
			released, releaseErr := providerRepo.ReleaseIdleVehicle(ctx, p.ID(), v.Number())
			if releaseErr != nil {
				return ReconcileVehiclesReport{}, releaseErr
			}
			if !released {
				h.logger.DebugContext(ctx, "vehicle is held again, skipped",
					"provider_id", p.ID().String(),
					"vehicle_number", v.Number(),
				)
				continue
			}
			report.Released++
			h.logger.InfoContext(ctx, "vehicle released",
				"provider_id", p.ID().String(),
				"vehicle_number", v.Number(),
			)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return ReconcileVehiclesReport{}, err
	}

	return report, nil
}

type heldVehicle struct {
	providerID kernel.UUID
	number     string
}

func orphans(p *logistics.Provider, held map[heldVehicle]struct{}) []*logistics.Vehicle {
	var out []*logistics.Vehicle
	for _, v := range p.ReservedVehicles() {
		if _, ok := held[heldVehicle{providerID: p.ID(), number: v.Number()}]; ok {
			continue
		}
		out = append(out, v)
	}
	return out
}
