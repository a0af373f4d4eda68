// ABOUTME: Read-only guide catalog: maintenance task definitions and categories.
// ABOUTME: The built-in catalog is embedded as YAML and decoded on first use.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/harperreed/mtbmaint/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed guides.yaml
var builtinYAML []byte

// Difficulty rates how hard a guide is.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Step is one instruction in a guide.
type Step struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Guide is a maintenance task definition. IntervalMiles is nil for tasks
// that are done on demand rather than on a mileage schedule.
type Guide struct {
	ID            string          `yaml:"id" json:"id"`
	Title         string          `yaml:"title" json:"title"`
	Category      models.Category `yaml:"category" json:"category"`
	Difficulty    Difficulty      `yaml:"difficulty" json:"difficulty"`
	IntervalMiles *float64        `yaml:"intervalMiles,omitempty" json:"intervalMiles,omitempty"`
	Tools         []string        `yaml:"tools,omitempty" json:"tools,omitempty"`
	Steps         []Step          `yaml:"steps" json:"steps"`
	VideoURL      string          `yaml:"videoUrl,omitempty" json:"videoUrl,omitempty"`
}

// Scheduled reports whether the guide has a mileage interval.
func (g *Guide) Scheduled() bool {
	return g.IntervalMiles != nil && *g.IntervalMiles > 0
}

// CategoryInfo describes a category for display.
type CategoryInfo struct {
	ID    models.Category `yaml:"id" json:"id"`
	Name  string          `yaml:"name" json:"name"`
	Color string          `yaml:"color" json:"color"`
}

// Catalog is an ordered, immutable set of guides. Iteration order is the
// order of the source document.
type Catalog struct {
	guides     []Guide
	categories []CategoryInfo
	byID       map[string]int
}

type document struct {
	Categories []CategoryInfo `yaml:"categories"`
	Guides     []Guide        `yaml:"guides"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(builtinYAML)
	})
	if defaultErr != nil {
		// The embedded file is part of the build; a decode failure is a programming error.
		panic(fmt.Sprintf("decode built-in guides: %v", defaultErr))
	}
	return defaultCatalog
}

// Load decodes a catalog from YAML.
func Load(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal guides: %w", err)
	}
	return New(doc.Guides, doc.Categories)
}

// New builds a catalog from guides in iteration order. Guide ids must be unique.
func New(guides []Guide, categories []CategoryInfo) (*Catalog, error) {
	c := &Catalog{
		guides:     guides,
		categories: categories,
		byID:       make(map[string]int, len(guides)),
	}
	for i, g := range guides {
		if g.ID == "" {
			return nil, fmt.Errorf("guide %d has no id", i)
		}
		if _, dup := c.byID[g.ID]; dup {
			return nil, fmt.Errorf("duplicate guide id %q", g.ID)
		}
		c.byID[g.ID] = i
	}
	return c, nil
}

// All returns every guide in catalog order.
func (c *Catalog) All() []Guide {
	out := make([]Guide, len(c.guides))
	copy(out, c.guides)
	return out
}

// Get returns the guide with the given id.
func (c *Catalog) Get(id string) (*Guide, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	g := c.guides[i]
	return &g, true
}

// Scheduled returns the guides that have a mileage interval.
func (c *Catalog) Scheduled() []Guide {
	var out []Guide
	for _, g := range c.guides {
		if g.Scheduled() {
			out = append(out, g)
		}
	}
	return out
}

// ByCategory returns the guides in one category.
func (c *Catalog) ByCategory(cat models.Category) []Guide {
	var out []Guide
	for _, g := range c.guides {
		if g.Category == cat {
			out = append(out, g)
		}
	}
	return out
}

// Search filters guides by a case-insensitive match on title or any tool,
// and by category. An empty query matches every guide; an empty category or
// "all" matches every category.
func (c *Catalog) Search(query string, category string) []Guide {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Guide
	for _, g := range c.guides {
		if category != "" && category != "all" && string(g.Category) != category {
			continue
		}
		if q == "" || matches(g, q) {
			out = append(out, g)
		}
	}
	return out
}

func matches(g Guide, q string) bool {
	if strings.Contains(strings.ToLower(g.Title), q) {
		return true
	}
	for _, tool := range g.Tools {
		if strings.Contains(strings.ToLower(tool), q) {
			return true
		}
	}
	return false
}

// Categories returns the category descriptions in display order.
func (c *Catalog) Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(c.categories))
	copy(out, c.categories)
	return out
}

// Len returns the number of guides.
func (c *Catalog) Len() int { return len(c.guides) }
