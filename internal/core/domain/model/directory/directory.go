// Package directory holds read-only summaries of records owned by other
// services: marketplace parties and catalog products. Orders reference
// them by id and list views attach them.
package directory

import "ricetrade/internal/core/domain/model/kernel"

// Party is the public profile of a seller, buyer or logistics provider.
type Party struct {
	ID    kernel.UUID
	Name  string
	Phone string
	City  string
}

// Product is the catalog summary of a traded lot.
type Product struct {
	ID   kernel.UUID
	Type string
}
