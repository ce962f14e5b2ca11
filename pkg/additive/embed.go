package additive

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/additives.json
var datasetFS embed.FS

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry built from the embedded dataset.
// The dataset is parsed exactly once per process; subsequent calls
// return the same immutable registry.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = loadEmbedded()
	})
	return defaultRegistry, defaultErr
}

func loadEmbedded() (*Registry, error) {
	data, err := datasetFS.ReadFile("data/additives.json")
	if err != nil {
		return nil, fmt.Errorf("reading embedded dataset: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing embedded dataset: %w", err)
	}

	reg, err := NewRegistry(records)
	if err != nil {
		return nil, fmt.Errorf("building registry: %w", err)
	}
	return reg, nil
}
