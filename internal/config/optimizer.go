package config

import (
	"fish-logistics-service/internal/services"
	"fmt"
	"log/slog"
	"slices"
)

// OptimizerOptions builds services.Options from the process configuration.
// When SPOILAGE_PROFILES_PATH is set, its entries override the default rate table.
func (c Config) OptimizerOptions(logger *slog.Logger, metrics services.MetricsRecorder) (services.Options, error) {
	profiles := services.DefaultSpoilageProfiles()
	if c.SpoilageProfilesPath != "" {
		overrides, err := LoadSpoilageProfiles(c.SpoilageProfilesPath)
		if err != nil {
			return services.Options{}, fmt.Errorf("optimizer options: %w", err)
		}
		profiles = slices.Concat(profiles, overrides)
	}

	// Fail at startup rather than on the first request.
	if _, err := services.NewSpoilageModel(profiles, services.DefaultSpoilageOptions()); err != nil {
		return services.Options{}, fmt.Errorf("optimizer options: %w", err)
	}

	annotator := services.DefaultAnnotatorOptions()
	if c.HighProfitThreshold > 0 {
		annotator.HighProfitThreshold = c.HighProfitThreshold
	}

	opts := services.Options{
		AverageSpeedKmh:     c.AverageSpeedKmh,
		Workers:             c.OptimizerWorkers,
		DefaultStorageHours: c.StorageHours,
		Profiles:            profiles,
		Annotator:           services.NewAnnotator(annotator),
		Logger:              logger,
		Metrics:             metrics,
	}
	return opts, nil
}
