package app

import (
	"fmt"

	"calcquest/internal/catalog"
	"calcquest/internal/grading"
	"calcquest/internal/state"
	"calcquest/internal/telemetry"
)

// Outcome is the result of one submitted answer.
type Outcome struct {
	state.AnswerResult
	TopicID       string
	RuneCollected string
	GameCompleted bool
}

// Session is one sitting of play. It is the only place where grading and
// progress meet.
type Session struct {
	ID string

	store   *state.ProgressStore
	grader  grading.Grader
	catalog *catalog.Catalog
	logger  *telemetry.Logger
}

func NewSession(id string, store *state.ProgressStore, grader grading.Grader, cat *catalog.Catalog, logger *telemetry.Logger) *Session {
	return &Session{
		ID:      id,
		store:   store,
		grader:  grader,
		catalog: cat,
		logger:  logger,
	}
}

// SubmitAnswer grades input, records it against the topic and, when the
// topic was just mastered, awards the region's rune once every topic in it
// is mastered. Holding every rune completes the game.
func (s *Session) SubmitAnswer(topicID, input string, correct grading.Answer) Outcome {
	ok := s.grader.Grade(input, correct)
	res := s.store.RecordAnswer(topicID, ok)
	out := Outcome{AnswerResult: res, TopicID: topicID}
	s.logger.Info("answer.recorded", map[string]any{"topic": topicID, "correct": ok, "streak": res.Streak})
	if !res.JustMastered {
		return out
	}
	if region, found := s.catalog.RegionForTopic(topicID); found {
		if s.store.AreAllTopicsMastered(region.TopicIDs()) && s.store.CollectRune(region.RegionID) {
			out.RuneCollected = region.RegionID
		}
	}
	if s.store.HasAllRunes() && !s.store.GameCompleted() {
		s.store.MarkGameCompleted()
		out.GameCompleted = true
	}
	return out
}

// Enter moves the player to a region and optionally one of its topics.
func (s *Session) Enter(regionID, topicID string) error {
	region, ok := s.catalog.Region(regionID)
	if !ok {
		return fmt.Errorf("unknown region %q", regionID)
	}
	if topicID != "" {
		owner, ok := s.catalog.RegionForTopic(topicID)
		if !ok || owner.RegionID != region.RegionID {
			return fmt.Errorf("topic %q is not in region %q", topicID, regionID)
		}
	}
	s.store.SetCurrentRegion(region.RegionID)
	s.store.SetCurrentTopic(topicID)
	return nil
}

// RegionProgress counts mastered topics in a region.
func (s *Session) RegionProgress(regionID string) (mastered, total int) {
	region, ok := s.catalog.Region(regionID)
	if !ok {
		return 0, 0
	}
	ids := region.TopicIDs()
	return s.store.CountMasteredTopics(ids), len(ids)
}
