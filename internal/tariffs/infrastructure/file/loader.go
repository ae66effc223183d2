package file

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tariff-simulator/internal/rating/domain"
)

// Catalog is the YAML layout of a tariff seed file.
type Catalog struct {
	Tariffs []rating.Tariff `yaml:"tariffs"`
}

// LoadFile reads and validates a tariff seed file.
func LoadFile(path string) ([]rating.Tariff, error) {
	if path == "" {
		return nil, errors.New("tariff file: empty path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Every tariff needs a unique id so that
// reseeding is idempotent.
func Parse(data []byte) ([]rating.Tariff, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("tariff file: %w", err)
	}
	seen := make(map[string]struct{}, len(catalog.Tariffs))
	for i, tariff := range catalog.Tariffs {
		id := strings.TrimSpace(tariff.ID)
		if id == "" {
			return nil, fmt.Errorf("tariff file: entry %d has no id", i+1)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("tariff file: duplicate id %q", id)
		}
		seen[id] = struct{}{}
		if err := tariff.Validate(); err != nil {
			return nil, fmt.Errorf("tariff file: %s: %w", id, err)
		}
	}
	return catalog.Tariffs, nil
}
