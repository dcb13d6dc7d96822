package cargo

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

// CommodityInfo explains a commodity symbol.
type CommodityInfo struct {
	ID        int    `yaml:"id"`
	Symbol    string `yaml:"symbol"`
	Category  string `yaml:"category"`
	TradeName string `yaml:"name"`
}

// Catalogue maps commodity symbols and market ids to CommodityInfo.
type Catalogue struct {
	bySymbol map[string]CommodityInfo
	byID     map[int]CommodityInfo
}

// ParseCatalogue builds a Catalogue from a YAML list of commodities.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var items []CommodityInfo
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing commodity catalogue: %w", err)
	}

	c := &Catalogue{
		bySymbol: make(map[string]CommodityInfo, len(items)),
		byID:     make(map[int]CommodityInfo, len(items)),
	}
	for _, it := range items {
		it.Symbol = normalizeSymbol(it.Symbol)
		if it.Symbol == "" {
			return nil, fmt.Errorf("commodity %d has no symbol", it.ID)
		}
		c.bySymbol[it.Symbol] = it
		if it.ID != 0 {
			c.byID[it.ID] = it
		}
	}
	return c, nil
}

var (
	defaultCatalogue     *Catalogue //nolint:gochecknoglobals // Parsed once from the embedded table.
	defaultCatalogueOnce sync.Once  //nolint:gochecknoglobals // Guards defaultCatalogue.
)

// DefaultCatalogue returns the catalogue embedded in the binary.
func DefaultCatalogue() *Catalogue {
	defaultCatalogueOnce.Do(func() {
		c, err := ParseCatalogue(catalogueYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalogue = c
	})
	return defaultCatalogue
}

// Explain returns the info for symbol. Journal-style "$gold_name;" symbols are
// accepted too.
func (c *Catalogue) Explain(symbol string) (CommodityInfo, bool) {
	info, ok := c.bySymbol[normalizeSymbol(symbol)]
	return info, ok
}

// ExplainID returns the info for a numeric market id.
func (c *Catalogue) ExplainID(id int) (CommodityInfo, bool) {
	info, ok := c.byID[id]
	return info, ok
}

// ExplainOrFallback never fails: unknown symbols keep their symbol as the
// trade name, an empty category and id 0.
func (c *Catalogue) ExplainOrFallback(symbol string) CommodityInfo {
	if info, ok := c.Explain(symbol); ok {
		return info
	}
	return CommodityInfo{Symbol: symbol, TradeName: symbol}
}

// Len returns the number of known commodities.
func (c *Catalogue) Len() int {
	return len(c.bySymbol)
}

func normalizeSymbol(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, ";")
	s = strings.TrimSuffix(s, "_name")
	return s
}
