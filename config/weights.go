package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Mammutor/NINA/routing"
)

// weightsFile is the YAML layout of WEIGHTS_FILE:
//
//	profiles:
//	  safest:   [1.5, 2, 2.5]
//	  balanced: [1.2, 1.5, 2]
//	  fastest:  [1, 1, 1]
type weightsFile struct {
	Profiles map[string][]float64 `yaml:"profiles"`
}

// LoadWeights reads weight overrides from path. Profiles missing from the
// file keep their built-in weights.
func LoadWeights(path string) (routing.WeightTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read WEIGHTS_FILE: %w", err)
	}
	return ParseWeights(data)
}

// ParseWeights decodes a weights YAML document on top of the defaults.
func ParseWeights(data []byte) (routing.WeightTable, error) {
	var f weightsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse weights YAML: %w", err)
	}

	table := routing.DefaultWeightTable()
	for name, values := range f.Profiles {
		p, err := routing.ParsePreference(name)
		if err != nil {
			return nil, fmt.Errorf("weights profile %q: %w", name, err)
		}
		if len(values) != len(routing.Weights{}) {
			return nil, fmt.Errorf("weights profile %q: want 3 values, got %d", name, len(values))
		}

		var w routing.Weights
		for i, v := range values {
			if !(v >= 1) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("weights profile %q: weight %v must be a finite number >= 1", name, v)
			}
			w[i] = v
		}
		table[p] = w
	}
	return table, nil
}
