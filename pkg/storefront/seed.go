package storefront

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/souqna/souqna/pkg/catalog"
	"github.com/souqna/souqna/pkg/vendor"
)

//go:embed seed.yaml
var defaultSeedYAML []byte

// Seed is the initial marketplace content every new session starts
// from: browsable categories, established vendors, and their products.
type Seed struct {
	Categories []catalog.Category `yaml:"categories"`
	Vendors    []vendor.Vendor    `yaml:"vendors"`
	Products   []catalog.Product  `yaml:"products"`
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("failed to parse seed: %w", err)
	}
	return seed, nil
}

// LoadSeed reads and parses a seed file from disk.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// DefaultSeed returns the embedded marketplace seed.
func DefaultSeed() Seed {
	seed, err := ParseSeed(defaultSeedYAML)
	if err != nil {
		// The embedded document is fixed at build time
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return seed
}
