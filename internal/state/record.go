package state

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	SchemaVersion    = 1
	MasteryThreshold = 5
	SaveKey          = "calcquest.save"
)

// RegionIDs are the fixed regions guarding one rune each, in unit order.
var RegionIDs = []string{
	"limits",
	"derivatives",
	"composite",
	"contextual",
	"analytical",
	"integration",
	"differential",
	"applications",
}

// TotalRunes is the number of runes needed to finish the game.
var TotalRunes = len(RegionIDs)

type Record struct {
	Version         int                       `json:"version"`
	Created         int64                     `json:"created"`
	LastPlayed      int64                     `json:"lastPlayed"`
	CurrentRegionID *string                   `json:"currentRegion"`
	CurrentTopicID  *string                   `json:"currentTopic"`
	Runes           map[string]bool           `json:"runes"`
	Topics          map[string]*TopicProgress `json:"topics"`
	Stats           Stats                     `json:"stats"`
	HasSeenIntro    bool                      `json:"hasSeenIntro"`
	GameCompleted   bool                      `json:"gameCompleted"`
}

type TopicProgress struct {
	Mastered       bool `json:"mastered"`
	Streak         int  `json:"streak"`
	Attempts       int  `json:"attempts"`
	CorrectAnswers int  `json:"correctAnswers"`
}

type Stats struct {
	TotalProblemsAttempted int   `json:"totalProblemsAttempted"`
	TotalProblemsCorrect   int   `json:"totalProblemsCorrect"`
	TotalTopicsMastered    int   `json:"totalTopicsMastered"`
	PlayTime               int64 `json:"playTime"`
}

// NewRecord returns a fresh save: every rune uncollected, no topics, zero stats.
func NewRecord(now time.Time) *Record {
	ms := now.UnixMilli()
	r := &Record{
		Version:    SchemaVersion,
		Created:    ms,
		LastPlayed: ms,
		Runes:      make(map[string]bool, len(RegionIDs)),
		Topics:     map[string]*TopicProgress{},
	}
	for _, id := range RegionIDs {
		r.Runes[id] = false
	}
	return r
}

func MarshalRecord(r *Record) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return string(b), nil
}

// UnmarshalRecord parses saved text. Missing rune keys and a missing topics
// map are filled in so a loaded record has the same shape as a fresh one.
func UnmarshalRecord(text string) (*Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	if r.Runes == nil {
		r.Runes = make(map[string]bool, len(RegionIDs))
	}
	for _, id := range RegionIDs {
		if _, ok := r.Runes[id]; !ok {
			r.Runes[id] = false
		}
	}
	if r.Topics == nil {
		r.Topics = map[string]*TopicProgress{}
	}
	for id, tp := range r.Topics {
		if tp == nil {
			r.Topics[id] = &TopicProgress{}
		}
	}
	return &r, nil
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.CurrentRegionID = cloneString(r.CurrentRegionID)
	out.CurrentTopicID = cloneString(r.CurrentTopicID)
	out.Runes = make(map[string]bool, len(r.Runes))
	for k, v := range r.Runes {
		out.Runes[k] = v
	}
	out.Topics = make(map[string]*TopicProgress, len(r.Topics))
	for k, v := range r.Topics {
		tp := *v
		out.Topics[k] = &tp
	}
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func isRegion(id string) bool {
	for _, r := range RegionIDs {
		if r == id {
			return true
		}
	}
	return false
}
