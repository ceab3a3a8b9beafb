package note

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zoomvault/zoomvault/internal/zoom"
)

func candidateAt(topic string, start time.Time, id int64) zoom.Candidate {
	return zoom.Candidate{UUID: "uuid-x", ID: id, Topic: topic, StartTime: start}
}

func TestFilename(t *testing.T) {
	start := time.Date(2025, 12, 10, 14, 30, 0, 0, time.UTC)

	t.Run("topic with colon and illegal characters", func(t *testing.T) {
		c := candidateAt("Q4 Planning: What's Next?", start, 123456789)
		assert.Equal(t, "Q4 Planning - Whats Next - 2025-12-10 1430.md", Filename(c, false))
	})

	t.Run("disambiguated variant appends the numeric id", func(t *testing.T) {
		c := candidateAt("Q4 Planning: What's Next?", start, 123456789)
		assert.Equal(t, "Q4 Planning - Whats Next - 2025-12-10 1430 (123456789).md", Filename(c, true))
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		c := candidateAt("Weekly Sync", start, 1)
		assert.Equal(t, Filename(c, false), Filename(c, false))
	})

	t.Run("blank topic falls back to placeholder", func(t *testing.T) {
		c := candidateAt("   ", start, 1)
		assert.Equal(t, PlaceholderTopic+" - 2025-12-10 1430.md", Filename(c, false))
	})

	t.Run("topic reducing to nothing falls back to placeholder", func(t *testing.T) {
		c := candidateAt(`***???`, start, 1)
		assert.Equal(t, PlaceholderTopic+" - 2025-12-10 1430.md", Filename(c, false))
	})

	t.Run("whitespace runs collapse", func(t *testing.T) {
		c := candidateAt("Weekly   \t  Sync", start, 1)
		assert.Equal(t, "Weekly Sync - 2025-12-10 1430.md", Filename(c, false))
	})

	t.Run("long topics are capped", func(t *testing.T) {
		c := candidateAt(strings.Repeat("a", 500), start, 1)
		name := Filename(c, false)
		assert.True(t, strings.HasPrefix(name, strings.Repeat("a", 200)+" - "))
		assert.NotContains(t, name, strings.Repeat("a", 201))
	})
}
