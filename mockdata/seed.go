package mockdata

import (
	_ "embed"
	"fmt"

	"market-dashboard/models"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Catalog is the static reference data the service is built from.
type Catalog struct {
	Assets    []models.Asset `yaml:"assets"`
	Portfolio struct {
		ID       string           `yaml:"id"`
		Holdings []models.Holding `yaml:"holdings"`
	} `yaml:"portfolio"`
	Indices models.MarketIndices `yaml:"indices"`
}

var (
	ErrEmptyCatalog   = fmt.Errorf("catalog has no assets")
	ErrDuplicateAsset = fmt.Errorf("duplicate asset symbol")
	ErrInvalidAsset   = fmt.Errorf("invalid asset")
	ErrUnknownHolding = fmt.Errorf("holding references unknown symbol")
)

// DefaultCatalog decodes the embedded seed.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultSeed)
}

// ParseCatalog decodes a YAML catalog and validates it.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) Validate() error {
	if len(c.Assets) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(c.Assets))
	for _, a := range c.Assets {
		if a.Symbol == "" {
			return fmt.Errorf("%w: asset %q has no symbol", ErrInvalidAsset, a.ID)
		}
		if seen[a.Symbol] {
			return fmt.Errorf("%w: %s", ErrDuplicateAsset, a.Symbol)
		}
		seen[a.Symbol] = true

		if a.Price <= 0 {
			return fmt.Errorf("%w: %s price must be positive", ErrInvalidAsset, a.Symbol)
		}
		if a.Type != models.KindStock && a.Type != models.KindCrypto {
			return fmt.Errorf("%w: %s has kind %q", ErrInvalidAsset, a.Symbol, a.Type)
		}
	}

	for _, h := range c.Portfolio.Holdings {
		if !seen[h.Symbol] {
			return fmt.Errorf("%w: %s", ErrUnknownHolding, h.Symbol)
		}
	}
	return nil
}
