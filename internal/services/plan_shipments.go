package services

import (
	"context"
	"fish-logistics-service/internal/domain"
	"fish-logistics-service/internal/ports"
	"fmt"
)

// PlanShipments loads a fresh catalog snapshot and optimizes the request against it.
//
// A repository failure is fatal for the call and surfaces as
// ErrCatalogUnavailable; retries belong to the repository, not here.
func PlanShipments(
	ctx context.Context,
	req OptimizeRequest,
	repo ports.CatalogRepository,
	opts Options,
) (*domain.RankedResult, error) {
	snap, err := repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan shipments: load snapshot: %w: %w", domain.ErrCatalogUnavailable, err)
	}
	if snap == nil {
		return nil, fmt.Errorf("plan shipments: repository returned no snapshot: %w", domain.ErrCatalogUnavailable)
	}

	res, err := Optimize(ctx, req, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("plan shipments: %w", err)
	}
	return res, nil
}
