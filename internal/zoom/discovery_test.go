package zoom

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient wires a Client against an httptest API server using a
// stubbed token endpoint and a recording executor.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","token_type":"bearer","expires_in":3600}`))
	}))
	t.Cleanup(tokenSrv.Close)

	apiSrv := httptest.NewServer(handler)
	t.Cleanup(apiSrv.Close)

	var waits []time.Duration
	exec := newTestExecutor(&waits)
	creds := Credentials{AccountID: "acct", ClientID: "id", ClientSecret: "secret"}
	tokens := NewTokenManager(creds, tokenSrv.URL, exec, nil)
	return NewClient(apiSrv.URL, tokens, exec, nil)
}

func transcriptMeeting(uuid string, id int64, topic string) string {
	return fmt.Sprintf(`{
		"uuid": %q, "id": %d, "topic": %q,
		"start_time": "2026-03-10T14:30:00Z", "duration": 30,
		"share_url": "https://zoom.example.com/rec/share/%s",
		"recording_files": [
			{"id": "f1", "file_type": "MP4", "status": "completed", "download_url": "https://dl.example.com/%s.mp4"},
			{"id": "f2", "file_type": "TRANSCRIPT", "status": "completed", "download_url": "https://dl.example.com/%s.vtt"}
		]
	}`, uuid, id, topic, uuid, uuid, uuid)
}

func noTranscriptMeeting(uuid string, id int64) string {
	return fmt.Sprintf(`{
		"uuid": %q, "id": %d, "topic": "no transcript",
		"start_time": "2026-03-11T09:00:00Z", "duration": 15,
		"recording_files": [
			{"id": "f1", "file_type": "MP4", "status": "completed", "download_url": "https://dl.example.com/%s.mp4"}
		]
	}`, uuid, id, uuid)
}

func TestListCandidates(t *testing.T) {
	t.Run("pages, dedups across identities and filters transcripts", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/users/alice/recordings", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("next_page_token") == "" {
				fmt.Fprintf(w, `{"next_page_token": "page2", "meetings": [%s]}`,
					transcriptMeeting("uuid-a", 111, "Standup"))
				return
			}
			fmt.Fprintf(w, `{"meetings": [%s, %s]}`,
				transcriptMeeting("uuid-b", 222, "Retro"),
				noTranscriptMeeting("uuid-c", 333))
		})
		mux.HandleFunc("/users/bob/recordings", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			// uuid-a is visible under bob as well; first occurrence wins.
			fmt.Fprintf(w, `{"meetings": [%s]}`, transcriptMeeting("uuid-a", 111, "Standup"))
		})
		c := newTestClient(t, mux)

		since := time.Now().Add(-24 * time.Hour)
		candidates, err := c.ListCandidates(context.Background(), []string{"alice", "bob"}, since)
		require.NoError(t, err)

		require.Len(t, candidates, 2)
		assert.Equal(t, "uuid-a", candidates[0].UUID)
		assert.Equal(t, int64(111), candidates[0].ID)
		assert.Equal(t, "https://dl.example.com/uuid-a.vtt", candidates[0].TranscriptURL)
		assert.Equal(t, "uuid-b", candidates[1].UUID)
	})

	t.Run("queries one window per month of lookback", func(t *testing.T) {
		var ranges []string
		mux := http.NewServeMux()
		mux.HandleFunc("/users/alice/recordings", func(w http.ResponseWriter, r *http.Request) {
			ranges = append(ranges, r.URL.Query().Get("from")+".."+r.URL.Query().Get("to"))
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"meetings": []}`)
		})
		c := newTestClient(t, mux)

		since := time.Now().AddDate(0, -3, 0)
		_, err := c.ListCandidates(context.Background(), []string{"alice"}, since)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(ranges), 3)
	})

	t.Run("auth failure propagates", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/users/alice/recordings", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		c := newTestClient(t, mux)

		_, err := c.ListCandidates(context.Background(), []string{"alice"}, time.Now().Add(-time.Hour))
		assert.True(t, IsAuth(err))
	})
}

func TestMonthWindows(t *testing.T) {
	since := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	windows := monthWindows(since, until)
	require.Len(t, windows, 3)
	assert.Equal(t, since, windows[0].from)
	assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), windows[0].to)
	assert.Equal(t, until, windows[2].to)

	// No window spans more than one calendar month.
	for _, w := range windows {
		assert.False(t, w.to.After(w.from.AddDate(0, 1, 0)))
	}
}

func TestResolveIdentities(t *testing.T) {
	t.Run("prefers account-wide enumeration", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("next_page_token") == "" {
				fmt.Fprint(w, `{"next_page_token": "p2", "users": [{"id": "u1", "email": "a@example.com"}]}`)
				return
			}
			fmt.Fprint(w, `{"users": [{"id": "u2", "email": "b@example.com"}]}`)
		})
		c := newTestClient(t, mux)

		ids, err := c.ResolveIdentities(context.Background(), []string{"static"})
		require.NoError(t, err)
		assert.Equal(t, []string{"u1", "u2"}, ids)
	})

	t.Run("falls back to configured identities on insufficient privilege", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/users", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		c := newTestClient(t, mux)

		ids, err := c.ResolveIdentities(context.Background(), []string{"me@example.com"})
		require.NoError(t, err)
		assert.Equal(t, []string{"me@example.com"}, ids)
	})

	t.Run("privilege failure with no fallback propagates", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/users", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		c := newTestClient(t, mux)

		_, err := c.ResolveIdentities(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("auth failure does not fall back", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/users", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		c := newTestClient(t, mux)

		_, err := c.ResolveIdentities(context.Background(), []string{"me@example.com"})
		assert.True(t, IsAuth(err))
	})
}

func TestListSessionCandidates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice/past_sessions", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"sessions": [
			{"uuid": "sess-1", "id": 901, "topic": "Design Review", "start_time": "2026-04-01T10:00:00Z", "duration": 60},
			{"uuid": "sess-2", "id": 902, "topic": "No Transcript Yet", "start_time": "2026-04-02T10:00:00Z", "duration": 60}
		]}`)
	})
	mux.HandleFunc("/past_sessions/sess-1/transcript", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status": "completed", "download_url": "https://dl.example.com/sess-1.vtt"}`)
	})
	mux.HandleFunc("/past_sessions/sess-2/transcript", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	c := newTestClient(t, mux)

	candidates, err := c.ListSessionCandidates(context.Background(), []string{"alice"}, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "sess-1", candidates[0].UUID)
	assert.Equal(t, "https://dl.example.com/sess-1.vtt", candidates[0].TranscriptURL)
}

func TestListParticipants(t *testing.T) {
	t.Run("collects pages", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/past_meetings/uuid-a/participants", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("next_page_token") == "" {
				fmt.Fprint(w, `{"next_page_token": "p2", "participants": [{"name": "John Smith"}]}`)
				return
			}
			fmt.Fprint(w, `{"participants": [{"name": "Ada Lovelace"}]}`)
		})
		c := newTestClient(t, mux)

		participants, err := c.ListParticipants(context.Background(), "uuid-a")
		require.NoError(t, err)
		require.Len(t, participants, 2)
		assert.Equal(t, "John Smith", participants[0].Name)
	})

	t.Run("missing report yields empty list", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/past_meetings/uuid-b/participants", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		c := newTestClient(t, mux)

		participants, err := c.ListParticipants(context.Background(), "uuid-b")
		require.NoError(t, err)
		assert.Empty(t, participants)
	})
}

func TestDownloadTranscript(t *testing.T) {
	const payload = "WEBVTT\n\n1\n00:00:01.000 --> 00:00:02.000\nhello\n"

	mux := http.NewServeMux()
	mux.HandleFunc("/rec/download/abc", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(payload))
	})
	c := newTestClient(t, mux)

	body, err := c.DownloadTranscript(context.Background(), c.baseURL+"/rec/download/abc")
	require.NoError(t, err)
	assert.Equal(t, payload, body)
}
