package note

import "strings"

// CueEntry is one parsed dialogue unit from a VTT transcript. Speaker is
// empty for un-attributed text.
type CueEntry struct {
	Timestamp string
	Speaker   string
	Text      string
}

// ParseVTT parses a raw WebVTT payload into discrete cue entries. Each cue
// block is a timestamp range followed by dialogue lines; multi-line bodies
// are joined into one entry with single spaces. Blocks without a timestamp
// line (the WEBVTT header, notes) are skipped.
func ParseVTT(raw string) []CueEntry {
	var entries []CueEntry
	for _, block := range splitBlocks(raw) {
		entry, ok := parseCue(block)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func splitBlocks(raw string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func parseCue(block []string) (CueEntry, bool) {
	// Locate the timestamp line; an optional cue id may precede it.
	tsIndex := -1
	for i, line := range block {
		if strings.Contains(line, "-->") {
			tsIndex = i
			break
		}
	}
	if tsIndex < 0 || tsIndex == len(block)-1 {
		return CueEntry{}, false
	}

	start, _, _ := strings.Cut(block[tsIndex], "-->")
	timestamp, _, _ := strings.Cut(strings.TrimSpace(start), ".")

	lines := block[tsIndex+1:]
	speaker, first := splitSpeaker(lines[0])

	parts := []string{strings.TrimSpace(first)}
	for _, l := range lines[1:] {
		parts = append(parts, strings.TrimSpace(l))
	}
	return CueEntry{
		Timestamp: timestamp,
		Speaker:   speaker,
		Text:      strings.Join(parts, " "),
	}, true
}

// splitSpeaker splits "John Smith: Hello" into ("John Smith", "Hello") when
// the text before the first colon looks like a speaker name rather than a
// URL scheme and text follows the colon; otherwise the whole line is
// un-attributed text.
func splitSpeaker(line string) (speaker, text string) {
	before, after, found := strings.Cut(line, ":")
	if !found || before == "" {
		return "", line
	}
	if strings.HasPrefix(after, "//") {
		return "", line
	}
	if strings.TrimSpace(after) == "" {
		return "", line
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// RenderTranscript renders parsed entries as Markdown: a bolded timestamp
// header (with the speaker when attributed) followed by the text, entries
// separated by a blank line.
func RenderTranscript(entries []CueEntry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if e.Speaker != "" {
			b.WriteString("**" + e.Timestamp + " - " + e.Speaker + ":**\n")
		} else {
			b.WriteString("**" + e.Timestamp + "**\n")
		}
		b.WriteString(e.Text)
	}
	return b.String()
}
