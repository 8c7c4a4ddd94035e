package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	rec := NewRecord(time.Date(2026, time.May, 4, 8, 30, 0, 0, time.UTC))
	region, topic := "composite", "3.1"
	rec.CurrentRegionID = &region
	rec.CurrentTopicID = &topic
	rec.Runes["limits"] = true
	rec.Topics["1.1"] = &TopicProgress{Mastered: true, Streak: 7, Attempts: 9, CorrectAnswers: 8}
	rec.Topics["3.1"] = &TopicProgress{Attempts: 1}
	rec.Stats = Stats{TotalProblemsAttempted: 10, TotalProblemsCorrect: 8, TotalTopicsMastered: 1, PlayTime: 123456}
	rec.HasSeenIntro = true

	text, err := MarshalRecord(rec)
	require.NoError(t, err)
	got, err := UnmarshalRecord(text)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestRecordWireFieldNames(t *testing.T) {
	text, err := MarshalRecord(NewRecord(time.Unix(0, 0)))
	require.NoError(t, err)
	for _, field := range []string{
		`"version":1`, `"created":0`, `"lastPlayed":0`, `"currentRegion":null`, `"currentTopic":null`,
		`"runes":{`, `"topics":{}`, `"totalProblemsAttempted":0`, `"playTime":0`,
		`"hasSeenIntro":false`, `"gameCompleted":false`,
	} {
		assert.Contains(t, text, field)
	}
}

func TestUnmarshalRecordBackfillsShape(t *testing.T) {
	got, err := UnmarshalRecord(`{"version":1,"runes":{"limits":true},"topics":{"1.1":null}}`)
	require.NoError(t, err)
	assert.Len(t, got.Runes, TotalRunes)
	assert.True(t, got.Runes["limits"])
	assert.False(t, got.Runes["applications"])
	assert.Equal(t, &TopicProgress{}, got.Topics["1.1"])

	_, err = UnmarshalRecord("[]")
	assert.Error(t, err)
}

func TestCloneIsDeep(t *testing.T) {
	rec := NewRecord(time.Unix(1, 0))
	rec.Topics["1.1"] = &TopicProgress{Streak: 1}

	cp := rec.Clone()
	cp.Topics["1.1"].Streak = 4
	cp.Runes["limits"] = true

	assert.Equal(t, 1, rec.Topics["1.1"].Streak)
	assert.False(t, rec.Runes["limits"])
}
