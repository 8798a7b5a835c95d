package orderrepo

import (
	"context"
	"errors"
	"time"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Add saves a new order as version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	aggregate.MarkPersisted(dto.Version, dto.UpdatedAt)
	return nil
}

// Update writes every column of the order if the stored version still equals
// the aggregate's, then advances the version.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	dto.UpdatedAt = r.now()

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate.ID())
	}

	aggregate.MarkPersisted(dto.Version, dto.UpdatedAt)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) ListBySeller(ctx context.Context, sellerID kernel.UUID) ([]*order.Order, error) {
	return r.find(ctx, "seller_id = ?", sellerID.Google())
}

func (r *GormOrderRepository) ListByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*order.Order, error) {
	return r.find(ctx, "buyer_id = ?", buyerID.Google())
}

func (r *GormOrderRepository) ListByProvider(ctx context.Context, providerID kernel.UUID) ([]*order.Order, error) {
	return r.find(ctx, "logistics_provider_id = ?", providerID.Google())
}

// ListHoldingVehicles retrieves all orders whose vehicle is still reserved.
func (r *GormOrderRepository) ListHoldingVehicles(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, "status IN ?", []string{order.Processing.String(), order.InTransit.String()})
}

func (r *GormOrderRepository) find(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC").
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) missOrConflict(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Google()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewConflictError("order", "modified concurrently, reload and retry")
}
