package note

import (
	"fmt"
	"strings"
	"time"

	"github.com/zoomvault/zoomvault/internal/zoom"
)

// BuildDocument turns a candidate plus its raw transcript payload into the
// complete formatted document: a frontmatter metadata block, a
// human-readable header, the attendee list and the rendered transcript.
// name is the document name without extension.
func BuildDocument(c zoom.Candidate, name, rawTranscript string, participants []zoom.Participant, syncedAt time.Time) string {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "name: \"%s\"\n", escapeMeta(name))
	fmt.Fprintf(&b, "time: %s\n", c.StartTime.Format(time.RFC3339))
	fmt.Fprintf(&b, "duration: %d\n", c.Duration)
	b.WriteString("attendees:\n")
	for _, p := range participants {
		fmt.Fprintf(&b, "  - \"%s\"\n", escapeMeta(p.Name))
	}
	fmt.Fprintf(&b, "topic: \"%s\"\n", escapeMeta(c.Topic))
	b.WriteString("host: \"\"\n")
	fmt.Fprintf(&b, "recording: \"%s\"\n", escapeMeta(c.ShareURL))
	fmt.Fprintf(&b, "meeting_id: \"%s\"\n", escapeMeta(c.UUID))
	fmt.Fprintf(&b, "synced_at: %s\n", syncedAt.Format(time.RFC3339))
	b.WriteString("---\n\n")

	topic := c.Topic
	if strings.TrimSpace(topic) == "" {
		topic = PlaceholderTopic
	}
	fmt.Fprintf(&b, "# %s\n\n", topic)
	fmt.Fprintf(&b, "**Date:** %s\n", c.StartTime.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "**Duration:** %d minutes\n", c.Duration)
	b.WriteString("**Host:**\n\n")

	b.WriteString("## Attendees\n\n")
	for _, p := range participants {
		fmt.Fprintf(&b, "- %s\n", p.Name)
	}
	b.WriteString("\n## Transcript\n\n")
	b.WriteString(RenderTranscript(ParseVTT(rawTranscript)))
	b.WriteString("\n")

	return b.String()
}

// escapeMeta escapes backslashes and double quotes so free-text values stay
// parseable inside a quoted metadata field.
func escapeMeta(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
