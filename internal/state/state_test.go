package state

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoomvault/zoomvault/internal/vault"
)

func newTestStore(t *testing.T) (*Store, vault.Store) {
	t.Helper()
	v := vault.NewDirStore(t.TempDir())
	require.NoError(t, v.EnsureFolder("Zoom Transcripts"))
	return NewStore(v, "Zoom Transcripts", nil), v
}

func TestStoreRoundTrip(t *testing.T) {
	s, v := newTestStore(t)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	s.Load()
	assert.False(t, s.IsSynced("uuid-1"))

	s.MarkSynced("uuid-1", "Standup - 2026-03-10 1430.md")
	s.MarkSynced("uuid-2", "Retro - 2026-03-11 0900.md")
	require.NoError(t, s.Save())

	reloaded := NewStore(v, "Zoom Transcripts", nil)
	reloaded.Load()
	assert.True(t, reloaded.IsSynced("uuid-1"))
	assert.True(t, reloaded.IsSynced("uuid-2"))
	assert.Equal(t, 2, reloaded.Count())

	e, ok := reloaded.Entry("uuid-1")
	require.True(t, ok)
	assert.Equal(t, "Standup - 2026-03-10 1430.md", e.FileName)
	assert.Equal(t, int64(1700000000000), e.SyncedAt)
}

func TestStoreFileLayout(t *testing.T) {
	s, v := newTestStore(t)
	s.Load()
	s.MarkSynced("uuid-1", "a.md")
	require.NoError(t, s.Save())

	text, err := v.ReadText("Zoom Transcripts/" + FileName)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(text), &raw))
	assert.Contains(t, raw, "version")
	assert.Contains(t, raw, "syncedMeetings")
	assert.JSONEq(t, "1", string(raw["version"]))
}

func TestLoadNeverFailsOutward(t *testing.T) {
	t.Run("missing file yields fresh state", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.Load()
		assert.Equal(t, 0, s.Count())
		assert.NoError(t, s.Save())
	})

	t.Run("corrupt file yields fresh state", func(t *testing.T) {
		s, v := newTestStore(t)
		require.NoError(t, v.WriteText("Zoom Transcripts/"+FileName, "{not json"))

		s.Load()
		assert.Equal(t, 0, s.Count())
	})

	t.Run("missing map initialises empty", func(t *testing.T) {
		s, v := newTestStore(t)
		require.NoError(t, v.WriteText("Zoom Transcripts/"+FileName, `{"version": 1}`))

		s.Load()
		assert.Equal(t, 0, s.Count())
		s.MarkSynced("x", "x.md")
		assert.NoError(t, s.Save())
	})
}

func TestSaveBeforeLoad(t *testing.T) {
	s, _ := newTestStore(t)
	assert.ErrorIs(t, s.Save(), ErrNotLoaded)
}

func TestIdempotentResave(t *testing.T) {
	s, v := newTestStore(t)
	s.Load()
	s.MarkSynced("uuid-1", "a.md")
	require.NoError(t, s.Save())

	first, err := v.ReadText("Zoom Transcripts/" + FileName)
	require.NoError(t, err)

	// A reload-and-save cycle with no new items leaves the file unchanged.
	again := NewStore(v, "Zoom Transcripts", nil)
	again.Load()
	require.NoError(t, again.Save())

	second, err := v.ReadText("Zoom Transcripts/" + FileName)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
