package note

import (
	"strconv"
	"strings"

	"github.com/zoomvault/zoomvault/internal/zoom"
)

// PlaceholderTopic names documents whose topic is blank or reduces to
// nothing after sanitization.
const PlaceholderTopic = "Zoom Meeting"

// maxTopicRunes caps the sanitized topic length.
const maxTopicRunes = 200

// Extension is the document file extension.
const Extension = ".md"

// Filename derives the document filename for a candidate. The derivation is
// deterministic: identical (topic, start time) always yields the same name.
// When disambiguate is true the candidate's numeric id is appended in
// parentheses before the extension to resolve a collision.
func Filename(c zoom.Candidate, disambiguate bool) string {
	name := sanitizeTopic(c.Topic)
	name += " - " + c.StartTime.Format("2006-01-02 1504")
	if disambiguate {
		name += " (" + strconv.FormatInt(c.ID, 10) + ")"
	}
	return name + Extension
}

// sanitizeTopic makes a topic safe for use as a filesystem name: colons
// become a visually distinct separator, characters illegal in filenames are
// stripped, whitespace runs collapse, and the result is trimmed and capped.
func sanitizeTopic(topic string) string {
	if strings.TrimSpace(topic) == "" {
		return PlaceholderTopic
	}

	s := strings.ReplaceAll(topic, ":", " -")

	var b strings.Builder
	for _, r := range s {
		if r < 0x20 || strings.ContainsRune(`\/:*?"<>|'`, r) {
			continue
		}
		b.WriteRune(r)
	}
	s = strings.TrimSpace(strings.Join(strings.Fields(b.String()), " "))
	if s == "" {
		return PlaceholderTopic
	}

	runes := []rune(s)
	if len(runes) > maxTopicRunes {
		s = strings.TrimSpace(string(runes[:maxTopicRunes]))
	}
	return s
}
