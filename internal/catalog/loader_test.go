package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"calcquest/internal/state"
)

func TestBuiltinCatalogCoversEveryRune(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if len(c.Regions) != state.TotalRunes {
		t.Fatalf("expected %d regions, got %d", state.TotalRunes, len(c.Regions))
	}
	for i, want := range state.RegionIDs {
		if c.Regions[i].RegionID != want {
			t.Fatalf("region order mismatch at %d: got %q want %q", i, c.Regions[i].RegionID, want)
		}
		if c.Regions[i].Unit != i+1 {
			t.Fatalf("region %q: expected unit %d, got %d", want, i+1, c.Regions[i].Unit)
		}
	}
}

func TestRegionForTopic(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	r, ok := c.RegionForTopic("3.1")
	if !ok || r.RegionID != "composite" {
		t.Fatalf("expected 3.1 in composite, got %q ok=%v", r.RegionID, ok)
	}
	if _, ok := c.RegionForTopic("42.1"); ok {
		t.Fatalf("expected unknown topic")
	}
	topic, ok := c.Topic("4.7")
	if !ok || topic.Title != "L'Hospital's rule" {
		t.Fatalf("unexpected topic %#v", topic)
	}
	limits, _ := c.Region("limits")
	ids := limits.TopicIDs()
	if len(ids) == 0 || ids[0] != "1.1" {
		t.Fatalf("unexpected limits topics %v", ids)
	}
}

func TestValidateRejectsUnsupportedSchemaVersion(t *testing.T) {
	_, err := Parse([]byte("kind: catalog\nschema_version: 2\n"))
	if err == nil {
		t.Fatalf("expected unsupported schema version error")
	}
}

func TestValidateRejectsDuplicateTopic(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	c.Regions[1].Topics = append(c.Regions[1].Topics, Topic{TopicID: "1.1", Title: "dup"})
	if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "appears in both") {
		t.Fatalf("expected duplicate topic error, got %v", err)
	}
}

func TestValidateRejectsRegionWithoutRune(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	c.Regions[0].RegionID = "atlantis"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected unknown region error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	if err := os.WriteFile(path, builtinYAML, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Fatalf("load file: %v", err)
	}
	if err := os.WriteFile(path, []byte("kind: level\nschema_version: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected kind error")
	}
}
