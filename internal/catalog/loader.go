package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed regions.yaml
var builtinYAML []byte

// Load returns the built-in catalog.
func Load() (*Catalog, error) {
	return Parse(builtinYAML)
}

// LoadFile reads a catalog override from disk.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) Region(regionID string) (Region, bool) {
	for _, r := range c.Regions {
		if r.RegionID == regionID {
			return r, true
		}
	}
	return Region{}, false
}

// RegionForTopic finds the region a topic belongs to.
func (c *Catalog) RegionForTopic(topicID string) (Region, bool) {
	for _, r := range c.Regions {
		for _, t := range r.Topics {
			if t.TopicID == topicID {
				return r, true
			}
		}
	}
	return Region{}, false
}

func (c *Catalog) Topic(topicID string) (Topic, bool) {
	r, ok := c.RegionForTopic(topicID)
	if !ok {
		return Topic{}, false
	}
	for _, t := range r.Topics {
		if t.TopicID == topicID {
			return t, true
		}
	}
	return Topic{}, false
}
