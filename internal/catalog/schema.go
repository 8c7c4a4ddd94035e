package catalog

import (
	"fmt"
	"regexp"
	"slices"

	"calcquest/internal/state"
)

const (
	CatalogKind            = "catalog"
	SupportedSchemaVersion = 1
)

var (
	regionIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{2,31}$`)
	topicIDPattern  = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)
)

type Catalog struct {
	Kind          string   `yaml:"kind"`
	SchemaVersion int      `yaml:"schema_version"`
	Regions       []Region `yaml:"regions"`
}

// Region is a themed group of topics guarding one rune.
type Region struct {
	RegionID string  `yaml:"region_id"`
	Name     string  `yaml:"name"`
	Unit     int     `yaml:"unit"`
	Topics   []Topic `yaml:"topics"`
}

type Topic struct {
	TopicID string `yaml:"topic_id"`
	Title   string `yaml:"title"`
}

func (c Catalog) Validate() error {
	if c.Kind != CatalogKind {
		return fmt.Errorf("kind must be %q", CatalogKind)
	}
	if c.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if c.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported catalog schema_version %d (max supported %d)", c.SchemaVersion, SupportedSchemaVersion)
	}
	if len(c.Regions) != state.TotalRunes {
		return fmt.Errorf("catalog must define %d regions, got %d", state.TotalRunes, len(c.Regions))
	}
	seenRegions := map[string]struct{}{}
	seenTopics := map[string]string{}
	for _, r := range c.Regions {
		if !regionIDPattern.MatchString(r.RegionID) {
			return fmt.Errorf("invalid region_id %q", r.RegionID)
		}
		if !slices.Contains(state.RegionIDs, r.RegionID) {
			return fmt.Errorf("region_id %q has no rune", r.RegionID)
		}
		if _, ok := seenRegions[r.RegionID]; ok {
			return fmt.Errorf("duplicate region_id %q", r.RegionID)
		}
		seenRegions[r.RegionID] = struct{}{}
		if r.Name == "" {
			return fmt.Errorf("region %q: name is required", r.RegionID)
		}
		if len(r.Topics) == 0 {
			return fmt.Errorf("region %q: topics must contain at least one item", r.RegionID)
		}
		for _, t := range r.Topics {
			if !topicIDPattern.MatchString(t.TopicID) {
				return fmt.Errorf("region %q: invalid topic_id %q", r.RegionID, t.TopicID)
			}
			if owner, ok := seenTopics[t.TopicID]; ok {
				return fmt.Errorf("topic_id %q appears in both %q and %q", t.TopicID, owner, r.RegionID)
			}
			seenTopics[t.TopicID] = r.RegionID
			if t.Title == "" {
				return fmt.Errorf("topic %q: title is required", t.TopicID)
			}
		}
	}
	return nil
}

func (r Region) TopicIDs() []string {
	out := make([]string, 0, len(r.Topics))
	for _, t := range r.Topics {
		out = append(out, t.TopicID)
	}
	return out
}
