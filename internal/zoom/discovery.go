package zoom

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zoomvault/zoomvault/internal/logging"
)

// listPageSize is the page size requested from listing endpoints.
const listPageSize = 300

// DefaultLookback is how far discovery reaches back when no lower bound is
// configured or remembered.
const DefaultLookback = 6 * 30 * 24 * time.Hour

// ResolveIdentities returns the set of identities to query. It prefers an
// account-wide user enumeration; when that is rejected for lack of privilege
// it falls back to the configured static list.
func (c *Client) ResolveIdentities(ctx context.Context, configured []string) ([]string, error) {
	users, err := c.listUsers(ctx)
	if err == nil {
		return users, nil
	}

	// Auth and rate-limit failures abort the run; only a plain rejection
	// (e.g. 403 for a missing scope) triggers the static fallback.
	var reqErr *RequestError
	if errors.As(err, &reqErr) || IsNotFound(err) {
		if len(configured) > 0 {
			c.logger.Warn("account-wide user enumeration rejected, using configured identities",
				logging.Operation("users.list"), logging.Err(err))
			return configured, nil
		}
	}
	return nil, err
}

func (c *Client) listUsers(ctx context.Context) ([]string, error) {
	var ids []string
	pageToken := ""
	for {
		query := url.Values{"page_size": {strconv.Itoa(listPageSize)}}
		if pageToken != "" {
			query.Set("next_page_token", pageToken)
		}
		var page userListPage
		if err := c.getJSON(ctx, "users.list", "/users", query, &page); err != nil {
			return nil, err
		}
		for _, u := range page.Users {
			ids = append(ids, u.ID)
		}
		if page.NextPageToken == "" {
			return ids, nil
		}
		pageToken = page.NextPageToken
	}
}

// ListCandidates lists cloud-recording candidates for the given identities
// since the given lower bound. The provider enforces a maximum one-month
// range per query, so the span is iterated in calendar-month windows, each
// followed through its page-token cursor. Candidates are deduplicated by
// UUID across pages, windows and identities (a recording can be visible
// under more than one identity); the first occurrence wins. Only candidates
// exposing a transcript-typed file are returned.
func (c *Client) ListCandidates(ctx context.Context, identities []string, since time.Time) ([]Candidate, error) {
	now := time.Now()
	if since.IsZero() {
		since = now.Add(-DefaultLookback)
	}

	seen := make(map[string]bool)
	var candidates []Candidate
	for _, identity := range identities {
		for _, w := range monthWindows(since, now) {
			pageToken := ""
			for {
				query := url.Values{
					"page_size": {strconv.Itoa(listPageSize)},
					"from":      {w.from.Format("2006-01-02")},
					"to":        {w.to.Format("2006-01-02")},
				}
				if pageToken != "" {
					query.Set("next_page_token", pageToken)
				}
				var page recordingListPage
				err := c.getJSON(ctx, "recordings.list", "/users/"+url.PathEscape(identity)+"/recordings", query, &page)
				if err != nil {
					return nil, err
				}
				for _, m := range page.Meetings {
					if seen[m.UUID] {
						continue
					}
					seen[m.UUID] = true
					cand, ok := toCandidate(m)
					if !ok {
						continue
					}
					candidates = append(candidates, cand)
				}
				if page.NextPageToken == "" {
					break
				}
				pageToken = page.NextPageToken
			}
		}
		c.logger.Debug("identity discovery complete",
			logging.Operation("recordings.list"),
			logging.Identity(identity),
			slog.Int("candidates", len(candidates)))
	}
	return candidates, nil
}

// ListSessionCandidates is the secondary transcript source: a past-sessions
// listing plus a per-session transcript-availability lookup. Sessions with
// no transcript yet (a NotFound from the lookup) are silently dropped.
func (c *Client) ListSessionCandidates(ctx context.Context, identities []string, since time.Time) ([]Candidate, error) {
	now := time.Now()
	if since.IsZero() {
		since = now.Add(-DefaultLookback)
	}

	seen := make(map[string]bool)
	var candidates []Candidate
	for _, identity := range identities {
		for _, w := range monthWindows(since, now) {
			pageToken := ""
			for {
				query := url.Values{
					"page_size": {strconv.Itoa(listPageSize)},
					"from":      {w.from.Format("2006-01-02")},
					"to":        {w.to.Format("2006-01-02")},
				}
				if pageToken != "" {
					query.Set("next_page_token", pageToken)
				}
				var page sessionListPage
				err := c.getJSON(ctx, "sessions.list", "/users/"+url.PathEscape(identity)+"/past_sessions", query, &page)
				if err != nil {
					return nil, err
				}
				for _, s := range page.Sessions {
					if seen[s.UUID] {
						continue
					}
					seen[s.UUID] = true
					cand, err := c.sessionCandidate(ctx, s)
					if err != nil {
						if IsNotFound(err) {
							continue
						}
						return nil, err
					}
					candidates = append(candidates, cand)
				}
				if page.NextPageToken == "" {
					break
				}
				pageToken = page.NextPageToken
			}
		}
	}
	return candidates, nil
}

func (c *Client) sessionCandidate(ctx context.Context, s apiSession) (Candidate, error) {
	var tr sessionTranscript
	err := c.getJSON(ctx, "sessions.transcript", "/past_sessions/"+escapeUUID(s.UUID)+"/transcript", nil, &tr)
	if err != nil {
		return Candidate{}, err
	}
	if tr.DownloadURL == "" {
		return Candidate{}, &NotFoundError{Op: "sessions.transcript", Resource: "transcript for " + s.UUID}
	}
	return Candidate{
		UUID:          s.UUID,
		ID:            s.ID,
		Topic:         s.Topic,
		StartTime:     parseAPITime(s.StartTime),
		Duration:      s.Duration,
		ShareURL:      s.ShareURL,
		TranscriptURL: tr.DownloadURL,
	}, nil
}

// ListParticipants returns the attendees of a past meeting. An absent
// participant report is an expected steady state and yields an empty list.
func (c *Client) ListParticipants(ctx context.Context, meetingUUID string) ([]Participant, error) {
	var participants []Participant
	pageToken := ""
	for {
		query := url.Values{"page_size": {strconv.Itoa(listPageSize)}}
		if pageToken != "" {
			query.Set("next_page_token", pageToken)
		}
		var page participantListPage
		err := c.getJSON(ctx, "participants.list", "/past_meetings/"+escapeUUID(meetingUUID)+"/participants", query, &page)
		if err != nil {
			if IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		participants = append(participants, page.Participants...)
		if page.NextPageToken == "" {
			return participants, nil
		}
		pageToken = page.NextPageToken
	}
}

// toCandidate converts a listed meeting, keeping only those with a
// downloadable transcript file.
func toCandidate(m apiMeeting) (Candidate, bool) {
	transcriptURL := ""
	for _, f := range m.RecordingFiles {
		if f.FileType == "TRANSCRIPT" && f.DownloadURL != "" {
			transcriptURL = f.DownloadURL
			break
		}
	}
	if transcriptURL == "" {
		return Candidate{}, false
	}
	return Candidate{
		UUID:          m.UUID,
		ID:            m.ID,
		Topic:         m.Topic,
		StartTime:     parseAPITime(m.StartTime),
		Duration:      m.Duration,
		ShareURL:      m.ShareURL,
		TranscriptURL: transcriptURL,
	}, true
}

type window struct {
	from, to time.Time
}

// monthWindows splits [since, until] into calendar-month-sized windows.
// Windows may overlap the boundary day; UUID dedup absorbs that.
func monthWindows(since, until time.Time) []window {
	var windows []window
	start := since
	for start.Before(until) {
		end := start.AddDate(0, 1, 0)
		if end.After(until) {
			end = until
		}
		windows = append(windows, window{from: start, to: end})
		start = end.AddDate(0, 0, 1)
	}
	return windows
}

// parseAPITime parses the provider's RFC 3339 timestamps, returning the zero
// time for malformed values so a single bad record doesn't fail the page.
func parseAPITime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// escapeUUID double-encodes meeting UUIDs that begin with a slash or contain
// double slashes, as the provider's routing requires.
func escapeUUID(uuid string) string {
	if strings.HasPrefix(uuid, "/") || strings.Contains(uuid, "//") {
		return url.PathEscape(url.PathEscape(uuid))
	}
	return url.PathEscape(uuid)
}

