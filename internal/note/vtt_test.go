package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVTT(t *testing.T) {
	t.Run("cue with speaker", func(t *testing.T) {
		raw := "WEBVTT\n\n1\n00:00:16.239 --> 00:00:27.079\nJohn Smith: Hello team.\n"

		entries := ParseVTT(raw)
		require.Len(t, entries, 1)
		assert.Equal(t, "00:00:16", entries[0].Timestamp)
		assert.Equal(t, "John Smith", entries[0].Speaker)
		assert.Equal(t, "Hello team.", entries[0].Text)
	})

	t.Run("multi-line body joined with single spaces", func(t *testing.T) {
		raw := "WEBVTT\n\n00:01:00.000 --> 00:01:10.000\nAda Lovelace: First part\nsecond part\nthird part\n"

		entries := ParseVTT(raw)
		require.Len(t, entries, 1)
		assert.Equal(t, "Ada Lovelace", entries[0].Speaker)
		assert.Equal(t, "First part second part third part", entries[0].Text)
	})

	t.Run("url is not a speaker", func(t *testing.T) {
		raw := "WEBVTT\n\n00:02:00.000 --> 00:02:05.000\nhttps://example.com/page\n"

		entries := ParseVTT(raw)
		require.Len(t, entries, 1)
		assert.Empty(t, entries[0].Speaker)
		assert.Equal(t, "https://example.com/page", entries[0].Text)
	})

	t.Run("colon with nothing after it is not a speaker split", func(t *testing.T) {
		raw := "WEBVTT\n\n00:03:00.000 --> 00:03:05.000\ntrailing colon:\n"

		entries := ParseVTT(raw)
		require.Len(t, entries, 1)
		assert.Empty(t, entries[0].Speaker)
	})

	t.Run("multiple cues and crlf input", func(t *testing.T) {
		raw := "WEBVTT\r\n\r\n1\r\n00:00:01.000 --> 00:00:02.000\r\nA: one\r\n\r\n2\r\n00:00:03.000 --> 00:00:04.000\r\nB: two\r\n"

		entries := ParseVTT(raw)
		require.Len(t, entries, 2)
		assert.Equal(t, "A", entries[0].Speaker)
		assert.Equal(t, "B", entries[1].Speaker)
	})

	t.Run("malformed payload yields no entries", func(t *testing.T) {
		assert.Empty(t, ParseVTT("just some text\nwithout any cues"))
		assert.Empty(t, ParseVTT(""))
	})
}

func TestRenderTranscript(t *testing.T) {
	t.Run("speaker entry renders bold header with speaker", func(t *testing.T) {
		out := RenderTranscript([]CueEntry{
			{Timestamp: "00:00:16", Speaker: "John Smith", Text: "Hello team."},
		})
		assert.Equal(t, "**00:00:16 - John Smith:**\nHello team.", out)
	})

	t.Run("entries separated by blank line", func(t *testing.T) {
		out := RenderTranscript([]CueEntry{
			{Timestamp: "00:00:01", Speaker: "A", Text: "one"},
			{Timestamp: "00:00:02", Text: "no speaker"},
		})
		assert.Equal(t, "**00:00:01 - A:**\none\n\n**00:00:02**\nno speaker", out)
	})

	t.Run("empty input renders empty string", func(t *testing.T) {
		assert.Empty(t, RenderTranscript(nil))
	})
}
