package strategy

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const defaultDescription = "Strategy simulation results."

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Info is the display metadata for a strategy.
type Info struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type catalogFile struct {
	Strategies []Info `yaml:"strategies"`
}

// Catalog resolves display names and descriptions for strategy keys.
// It is immutable after construction.
type Catalog struct {
	entries map[string]Info
	order   []string
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded strategy catalog: %v", err))
	}
	return c
}

// ParseCatalog reads a YAML catalog with a top-level "strategies" list.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrCatalog, err)
	}
	c := &Catalog{
		entries: make(map[string]Info, len(f.Strategies)),
	}
	for _, info := range f.Strategies {
		if err := ValidateKey(info.Key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCatalog, err)
		}
		if _, dup := c.entries[info.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrCatalog, info.Key)
		}
		if strings.TrimSpace(info.Name) == "" {
			return nil, fmt.Errorf("%w: %q has no name", ErrCatalog, info.Key)
		}
		c.entries[info.Key] = info
		c.order = append(c.order, info.Key)
	}
	return c, nil
}

// Keys lists the catalogued keys in file order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Lookup returns display metadata for key. Unknown keys get a title-cased
// name and a generic description.
func (c *Catalog) Lookup(key string) Info {
	if info, ok := c.entries[key]; ok {
		return info
	}
	if IsFixedThreshold(key) {
		n := strings.TrimPrefix(key, FixedThresholdPrefix)
		return Info{
			Key:         key,
			Name:        fmt.Sprintf("Fixed Threshold (%s)", n),
			Description: fmt.Sprintf("Player always hits until their hand value is %s or more.", n),
		}
	}
	return Info{
		Key:         key,
		// Casers keep state, so each call gets its own.
		Name:        cases.Title(language.English).String(strings.ReplaceAll(key, "-", " ")),
		Description: defaultDescription,
	}
}
