package ports

import (
	"context"

	"ricetrade/internal/core/domain/model/directory"
	"ricetrade/internal/core/domain/model/kernel"
)

// DirectoryReader resolves the party and product summaries attached to
// order views. Unknown ids are absent from the result, not an error.
type DirectoryReader interface {
	Parties(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]directory.Party, error)
	Products(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]directory.Product, error)
}
