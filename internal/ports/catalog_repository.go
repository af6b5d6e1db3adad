package ports

import (
	"context"
	"fish-logistics-service/internal/domain"
)

// Port: a boundary for retrieving the reference collections used by the optimizer.
type CatalogRepository interface {
	// Load ports, trucks, markets, cold storages, lots and spoilage profiles
	// as one consistent in-memory snapshot.
	LoadSnapshot(ctx context.Context) (*domain.Snapshot, error)
}
