package domain

import "errors"

var (
	// ErrInvalidInput marks non-positive volumes, prices or distances and malformed coordinates.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownFishType is returned when a fish type has no spoilage profile.
	ErrUnknownFishType = errors.New("unknown fish type")

	// ErrNoDataAvailable is returned when the snapshot holds no usable source ports.
	ErrNoDataAvailable = errors.New("no data available")

	// ErrNoViableRoute reports that enumeration produced no feasible candidate.
	// It is a normal outcome, not a failure of the optimizer.
	ErrNoViableRoute = errors.New("no viable route")

	// ErrCatalogUnavailable is returned when the reference data could not be loaded at all.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
