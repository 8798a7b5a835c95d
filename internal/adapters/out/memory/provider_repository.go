package memory

import (
	"context"
	"sort"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/logistics"
	"ricetrade/internal/pkg/errs"
)

// ProviderRepository implements ports.ProviderRepository over a Store.
type ProviderRepository struct {
	uow *UnitOfWork
}

func (r *ProviderRepository) Add(_ context.Context, aggregate *logistics.Provider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.do(func(v view) error {
		if _, ok := v.provider(aggregate.ID()); ok {
			return errs.NewConflictError("provider", "already exists")
		}
		stored, err := cloneProvider(aggregate)
		if err != nil {
			return err
		}
		v.staged.providers[aggregate.ID()] = stored
		return nil
	})
}

// Update saves the profile and appends vehicles not stored yet. Stored
// vehicles keep their availability and location.
func (r *ProviderRepository) Update(_ context.Context, aggregate *logistics.Provider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.do(func(v view) error {
		current, ok := v.provider(aggregate.ID())
		if !ok {
			return errs.NewObjectNotFoundError("provider", aggregate.ID().String())
		}

		fleet := current.Vehicles()
		for _, vehicle := range aggregate.Vehicles() {
			if _, err := current.Vehicle(vehicle.Number()); err == nil {
				continue
			}
			fleet = append(fleet, vehicle)
		}

		next, err := logistics.RestoreProvider(aggregate.ID(), aggregate.Name(), aggregate.Phone(), aggregate.IsVerified(), fleet)
		if err != nil {
			return err
		}
		stored, err := cloneProvider(next)
		if err != nil {
			return err
		}
		v.staged.providers[aggregate.ID()] = stored
		return nil
	})
}

func (r *ProviderRepository) Get(_ context.Context, id kernel.UUID) (*logistics.Provider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var found *logistics.Provider
	err := r.uow.do(func(v view) error {
		stored, ok := v.provider(id)
		if !ok {
			return errs.NewObjectNotFoundError("provider", id.String())
		}
		var err error
		found, err = cloneProvider(stored)
		return err
	})
	return found, err
}

func (r *ProviderRepository) GetAll(_ context.Context) ([]*logistics.Provider, error) {
	out := []*logistics.Provider{}
	err := r.uow.do(func(v view) error {
		for _, stored := range v.providers() {
			p, err := cloneProvider(stored)
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// UpdateVehicleAvailability flips availability only when it currently equals
// from. Transactions are serialized, so the second of two reservations of
// one vehicle always sees the first.
func (r *ProviderRepository) UpdateVehicleAvailability(
	_ context.Context,
	providerID kernel.UUID,
	vehicleNumber string,
	from, to bool,
) error {
	return r.modifyVehicle(providerID, vehicleNumber, func(p *logistics.Provider, vehicle *logistics.Vehicle) error {
		if vehicle.IsAvailable() != from {
			if to {
				return logistics.ErrVehicleAlreadyAvailable
			}
			return logistics.ErrVehicleUnavailable
		}
		if to {
			_, err := p.ReleaseVehicle(vehicleNumber)
			return err
		}
		_, err := p.ReserveVehicle(vehicleNumber)
		return err
	})
}

// ReleaseIdleVehicle frees a reserved vehicle unless an order in the same
// view still holds it. The check and the write happen under one lock.
func (r *ProviderRepository) ReleaseIdleVehicle(
	_ context.Context,
	providerID kernel.UUID,
	vehicleNumber string,
) (bool, error) {
	released := false
	err := r.uow.do(func(v view) error {
		for _, o := range v.orders() {
			l := o.Logistics()
			if l != nil && o.Status().HoldsVehicle() && l.ProviderID().IsEqual(providerID) && l.VehicleNumber() == vehicleNumber {
				return nil
			}
		}

		stored, ok := v.provider(providerID)
		if !ok {
			return nil
		}
		p, err := cloneProvider(stored)
		if err != nil {
			return err
		}
		changed, err := p.ReleaseVehicle(vehicleNumber)
		if err != nil || !changed {
			return nil
		}
		v.staged.providers[providerID] = p
		released = true
		return nil
	})
	return released, err
}

func (r *ProviderRepository) UpdateVehicleLocation(
	_ context.Context,
	providerID kernel.UUID,
	vehicleNumber string,
	point kernel.GeoPoint,
) error {
	return r.modifyVehicle(providerID, vehicleNumber, func(p *logistics.Provider, _ *logistics.Vehicle) error {
		return p.MoveVehicle(vehicleNumber, point)
	})
}

// modifyVehicle applies fn to a copy of the owning provider and stages it.
func (r *ProviderRepository) modifyVehicle(
	providerID kernel.UUID,
	vehicleNumber string,
	fn func(p *logistics.Provider, vehicle *logistics.Vehicle) error,
) error {
	return r.uow.do(func(v view) error {
		stored, ok := v.provider(providerID)
		if !ok {
			return errs.NewObjectNotFoundError("vehicle", vehicleNumber)
		}
		p, err := cloneProvider(stored)
		if err != nil {
			return err
		}
		vehicle, err := p.Vehicle(vehicleNumber)
		if err != nil {
			return errs.NewObjectNotFoundError("vehicle", vehicleNumber)
		}
		if err := fn(p, vehicle); err != nil {
			return err
		}
		v.staged.providers[providerID] = p
		return nil
	})
}
