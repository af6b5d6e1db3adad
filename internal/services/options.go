package services

import (
	"fish-logistics-service/internal/domain"
	"fish-logistics-service/internal/ports"
	"log/slog"
	"runtime"
	"time"
)

const (
	DefaultAverageSpeedKmh     = 60.0
	DefaultStorageHours        = 6.0
	DefaultResultLimit         = 20
	DefaultHighProfitThreshold = 50000.0
)

// MetricsRecorder receives one observation per optimization call.
type MetricsRecorder interface {
	RecordOptimization(status domain.ResultStatus, evaluated, feasible int, dur time.Duration)
}

// Options configure the optimizer. Zero values fall back to defaults.
type Options struct {
	AverageSpeedKmh     float64
	Workers             int
	DefaultStorageHours float64
	DefaultResultLimit  int

	// Base rate table; nil uses DefaultSpoilageProfiles. Snapshot.Profiles
	// override entries for the same fish type.
	Profiles []domain.SpoilageProfile
	Spoilage SpoilageOptions

	Distance  ports.DistanceProvider
	Annotator *Annotator

	Logger  *slog.Logger
	Metrics MetricsRecorder
}

func (o Options) withDefaults() Options {
	if o.AverageSpeedKmh <= 0 {
		o.AverageSpeedKmh = DefaultAverageSpeedKmh
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.DefaultStorageHours <= 0 {
		o.DefaultStorageHours = DefaultStorageHours
	}
	if o.DefaultResultLimit <= 0 {
		o.DefaultResultLimit = DefaultResultLimit
	}
	if o.Profiles == nil {
		o.Profiles = DefaultSpoilageProfiles()
	}
	if o.Spoilage == (SpoilageOptions{}) {
		o.Spoilage = DefaultSpoilageOptions()
	}
	if o.Distance == nil {
		o.Distance = GreatCircle{}
	}
	if o.Annotator == nil {
		o.Annotator = NewAnnotator(DefaultAnnotatorOptions())
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
