package state

import (
	"time"
)

// AnswerResult is what RecordAnswer reports back to the caller.
type AnswerResult struct {
	Correct      bool
	Streak       int
	Mastered     bool
	JustMastered bool
}

// ProgressStore owns one player's record and writes the whole record to KV
// after every mutation. Persistence failures are logged and never fail the
// mutation itself; the in-memory record stays authoritative for the session.
// It is not safe for concurrent use.
type ProgressStore struct {
	kv     KV
	clock  Clock
	logger Logger
	key    string

	rec        *Record
	lastSaveOK bool
}

func NewProgressStore(kv KV, clock Clock, logger Logger) *ProgressStore {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &ProgressStore{
		kv:         kv,
		clock:      clock,
		logger:     logger,
		key:        SaveKey,
		rec:        NewRecord(clock.Now()),
		lastSaveOK: true,
	}
}

// LoadOrInit replaces the in-memory record with the saved one, or a fresh
// record when nothing usable is saved. It never writes. loaded reports
// whether a saved record was found.
func (s *ProgressStore) LoadOrInit() (loaded bool) {
	now := s.clock.Now()
	text, found, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Error("progress.load_failed", map[string]any{"key": s.key, "error": err.Error()})
		s.rec = NewRecord(now)
		return false
	}
	if !found {
		s.rec = NewRecord(now)
		return false
	}
	rec, err := UnmarshalRecord(text)
	if err != nil {
		s.logger.Error("progress.load_corrupt", map[string]any{"key": s.key, "error": err.Error()})
		s.rec = NewRecord(now)
		return false
	}
	rec.LastPlayed = now.UnixMilli()
	s.rec = rec
	s.logger.Info("progress.loaded", map[string]any{"runes": s.CountRunes(), "topics": len(rec.Topics)})
	return true
}

// NewGame discards the current record and persists a fresh one.
func (s *ProgressStore) NewGame() {
	s.rec = NewRecord(s.clock.Now())
	s.logger.Info("progress.new_game", map[string]any{})
	s.Save()
}

// Save writes the whole record and reports whether it reached storage.
func (s *ProgressStore) Save() bool {
	s.rec.LastPlayed = s.clock.Now().UnixMilli()
	text, err := MarshalRecord(s.rec)
	if err == nil {
		err = s.kv.Set(s.key, text)
	}
	if err != nil {
		s.logger.Error("progress.save_failed", map[string]any{"key": s.key, "error": err.Error()})
		s.lastSaveOK = false
		return false
	}
	s.lastSaveOK = true
	return true
}

// LastSaveOK reports whether the most recent write succeeded.
func (s *ProgressStore) LastSaveOK() bool { return s.lastSaveOK }

// ClearSave erases the saved record. The in-memory record is left as is.
func (s *ProgressStore) ClearSave() bool {
	if err := s.kv.Remove(s.key); err != nil {
		s.logger.Error("progress.clear_failed", map[string]any{"key": s.key, "error": err.Error()})
		return false
	}
	s.logger.Info("progress.cleared", map[string]any{"key": s.key})
	return true
}

// Snapshot returns a deep copy of the current record.
func (s *ProgressStore) Snapshot() *Record { return s.rec.Clone() }

func (s *ProgressStore) topic(id string) *TopicProgress {
	tp, ok := s.rec.Topics[id]
	if !ok {
		tp = &TopicProgress{}
		s.rec.Topics[id] = tp
	}
	return tp
}

func (s *ProgressStore) RecordAnswer(topicID string, correct bool) AnswerResult {
	tp := s.topic(topicID)
	tp.Attempts++
	s.rec.Stats.TotalProblemsAttempted++

	justMastered := false
	if correct {
		tp.Streak++
		tp.CorrectAnswers++
		s.rec.Stats.TotalProblemsCorrect++
		if !tp.Mastered && tp.Streak >= MasteryThreshold {
			tp.Mastered = true
			s.rec.Stats.TotalTopicsMastered++
			justMastered = true
			s.logger.Info("progress.topic_mastered", map[string]any{"topic": topicID, "attempts": tp.Attempts})
		}
	} else {
		tp.Streak = 0
	}
	s.Save()
	return AnswerResult{
		Correct:      correct,
		Streak:       tp.Streak,
		Mastered:     tp.Mastered,
		JustMastered: justMastered,
	}
}

// CollectRune marks a region's rune as collected. It returns false without
// writing when the rune is already held or the region is unknown.
func (s *ProgressStore) CollectRune(regionID string) bool {
	if !isRegion(regionID) {
		s.logger.Error("progress.unknown_region", map[string]any{"region": regionID})
		return false
	}
	if s.rec.Runes[regionID] {
		return false
	}
	s.rec.Runes[regionID] = true
	s.logger.Info("progress.rune_collected", map[string]any{"region": regionID, "runes": s.CountRunes()})
	s.Save()
	return true
}

func (s *ProgressStore) HasRune(regionID string) bool { return s.rec.Runes[regionID] }

func (s *ProgressStore) CountRunes() int {
	n := 0
	for _, id := range RegionIDs {
		if s.rec.Runes[id] {
			n++
		}
	}
	return n
}

func (s *ProgressStore) HasAllRunes() bool { return s.CountRunes() == TotalRunes }

// SetCurrentRegion records where the player is. An empty id clears it.
func (s *ProgressStore) SetCurrentRegion(regionID string) {
	s.rec.CurrentRegionID = optional(regionID)
	s.Save()
}

// SetCurrentTopic records the open topic. An empty id clears it.
func (s *ProgressStore) SetCurrentTopic(topicID string) {
	s.rec.CurrentTopicID = optional(topicID)
	s.Save()
}

func (s *ProgressStore) CurrentRegion() string { return deref(s.rec.CurrentRegionID) }

func (s *ProgressStore) CurrentTopic() string { return deref(s.rec.CurrentTopicID) }

func (s *ProgressStore) IsTopicMastered(topicID string) bool {
	tp, ok := s.rec.Topics[topicID]
	return ok && tp.Mastered
}

func (s *ProgressStore) TopicStreak(topicID string) int {
	if tp, ok := s.rec.Topics[topicID]; ok {
		return tp.Streak
	}
	return 0
}

func (s *ProgressStore) CountMasteredTopics(topicIDs []string) int {
	n := 0
	for _, id := range topicIDs {
		if s.IsTopicMastered(id) {
			n++
		}
	}
	return n
}

// AreAllTopicsMastered is true for an empty list.
func (s *ProgressStore) AreAllTopicsMastered(topicIDs []string) bool {
	return s.CountMasteredTopics(topicIDs) == len(topicIDs)
}

func (s *ProgressStore) MarkIntroSeen() {
	s.rec.HasSeenIntro = true
	s.Save()
}

func (s *ProgressStore) MarkGameCompleted() {
	s.rec.GameCompleted = true
	s.logger.Info("progress.game_completed", map[string]any{})
	s.Save()
}

func (s *ProgressStore) HasSeenIntro() bool { return s.rec.HasSeenIntro }

func (s *ProgressStore) GameCompleted() bool { return s.rec.GameCompleted }

// AddPlayTime accumulates session time into stats.playTime.
func (s *ProgressStore) AddPlayTime(d time.Duration) {
	if d <= 0 {
		return
	}
	s.rec.Stats.PlayTime += d.Milliseconds()
	s.Save()
}

func (s *ProgressStore) Stats() Stats { return s.rec.Stats }

func optional(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
