package config

import (
	"fish-logistics-service/internal/domain"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type profilesFile struct {
	Profiles []domain.SpoilageProfile `yaml:"profiles"`
}

// LoadSpoilageProfiles reads a YAML rate table from path.
func LoadSpoilageProfiles(path string) ([]domain.SpoilageProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load spoilage profiles: open %q: %w", path, err)
	}
	defer f.Close()

	return ParseSpoilageProfiles(f)
}

// ParseSpoilageProfiles decodes
//
//	profiles:
//	  - fish_type: tilapia
//	    regular_rate_per_hour: 0.02
//	    refrigerated_rate_per_hour: 0.0067
func ParseSpoilageProfiles(r io.Reader) ([]domain.SpoilageProfile, error) {
	var file profilesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse spoilage profiles: %w", err)
	}

	for i, p := range file.Profiles {
		ft, err := domain.ParseFishType(string(p.FishType))
		if err != nil {
			return nil, fmt.Errorf("parse spoilage profiles: entry %d: %w", i+1, err)
		}
		file.Profiles[i].FishType = ft

		if err := file.Profiles[i].Validate(); err != nil {
			return nil, fmt.Errorf("parse spoilage profiles: entry %d: %w", i+1, err)
		}
	}

	return file.Profiles, nil
}
