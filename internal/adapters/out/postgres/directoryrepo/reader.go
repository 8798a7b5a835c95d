// Package directoryrepo reads party and product summaries from tables owned
// by the marketplace services. The fulfillment core never writes them.
package directoryrepo

import (
	"context"

	"ricetrade/internal/core/domain/model/directory"
	"ricetrade/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartyDTO is a row of the parties table.
type PartyDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(255);not null"`
	Phone string    `gorm:"type:varchar(50)"`
	City  string    `gorm:"type:varchar(100)"`
}

func (PartyDTO) TableName() string {
	return "parties"
}

// ProductDTO is a row of the products table.
type ProductDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type string    `gorm:"type:varchar(100);not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// GormDirectoryReader implements ports.DirectoryReader.
type GormDirectoryReader struct {
	db *gorm.DB
}

func NewGormDirectoryReader(db *gorm.DB) *GormDirectoryReader {
	return &GormDirectoryReader{db: db}
}

func (r *GormDirectoryReader) Parties(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]directory.Party, error) {
	out := make(map[kernel.UUID]directory.Party, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var dtos []PartyDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw(ids)).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromGoogle(dto.ID)
		if err != nil {
			return nil, err
		}
		out[id] = directory.Party{ID: id, Name: dto.Name, Phone: dto.Phone, City: dto.City}
	}
	return out, nil
}

func (r *GormDirectoryReader) Products(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]directory.Product, error) {
	out := make(map[kernel.UUID]directory.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw(ids)).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromGoogle(dto.ID)
		if err != nil {
			return nil, err
		}
		out[id] = directory.Product{ID: id, Type: dto.Type}
	}
	return out, nil
}

func raw(ids []kernel.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Google())
	}
	return out
}
