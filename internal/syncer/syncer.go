package syncer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/zoomvault/zoomvault/internal/instrumentation"
	"github.com/zoomvault/zoomvault/internal/logging"
	"github.com/zoomvault/zoomvault/internal/note"
	"github.com/zoomvault/zoomvault/internal/state"
	"github.com/zoomvault/zoomvault/internal/zoom"
)

// Source names used in logs and metric labels.
const (
	SourceRecordings = "recordings"
	SourceSessions   = "sessions"
)

var (
	// ErrRunInProgress is returned when a run starts while another run
	// holds the lock.
	ErrRunInProgress = errors.New("sync run already in progress")

	// ErrDisabled is returned when runs are disabled after an
	// authentication failure. VerifyCredentials re-enables them.
	ErrDisabled = errors.New("sync disabled after authentication failure")
)

// MeetingAPI is the slice of the provider client a run needs.
type MeetingAPI interface {
	ResolveIdentities(ctx context.Context, configured []string) ([]string, error)
	ListCandidates(ctx context.Context, identities []string, since time.Time) ([]zoom.Candidate, error)
	ListSessionCandidates(ctx context.Context, identities []string, since time.Time) ([]zoom.Candidate, error)
	ListParticipants(ctx context.Context, meetingUUID string) ([]zoom.Participant, error)
	DownloadTranscript(ctx context.Context, ref string) (string, error)
}

// TokenSource mints and invalidates provider access tokens.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// Options configures a Syncer.
type Options struct {
	API    MeetingAPI
	Tokens TokenSource
	Writer *note.Writer
	State  *state.Store

	// Identities is the static fallback list when account-wide
	// enumeration is not permitted.
	Identities []string

	// Since is the discovery lower bound for the first run. Later runs
	// start from the previous run's start time.
	Since time.Time

	Recordings bool
	Sessions   bool

	Metrics *instrumentation.Metrics
	Logger  *slog.Logger
}

// Syncer drives complete sync runs: discover candidates, download their
// transcripts and materialize documents, recording progress in the state
// store as it goes. At most one run executes at a time.
type Syncer struct {
	api     MeetingAPI
	tokens  TokenSource
	writer  *note.Writer
	state   *state.Store
	metrics *instrumentation.Metrics
	logger  *slog.Logger

	identities []string
	since      time.Time
	recordings bool
	sessions   bool

	runMu    sync.Mutex
	disabled atomic.Bool

	mu      sync.Mutex
	lastRun time.Time

	now func() time.Time
}

func New(opts Options) *Syncer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		api:        opts.API,
		tokens:     opts.Tokens,
		writer:     opts.Writer,
		state:      opts.State,
		metrics:    opts.Metrics,
		logger:     logger,
		identities: opts.Identities,
		since:      opts.Since,
		recordings: opts.Recordings,
		sessions:   opts.Sessions,
		now:        time.Now,
	}
}

// Disabled reports whether runs are currently disabled after an
// authentication failure.
func (s *Syncer) Disabled() bool {
	return s.disabled.Load()
}

// LastRun returns the start time of the most recent completed run, or the
// zero time if no run has completed.
func (s *Syncer) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

// VerifyCredentials mints a fresh token to prove the configured credentials
// work, re-enabling runs on success.
func (s *Syncer) VerifyCredentials(ctx context.Context) error {
	s.tokens.Invalidate()
	if _, err := s.tokens.Token(ctx); err != nil {
		return err
	}
	s.disabled.Store(false)
	return nil
}

// Run executes one complete sync pass and reports what it did. Run never
// panics the caller with partial state: every materialized document is
// recorded in the state store before the next candidate is touched.
func (s *Syncer) Run(ctx context.Context) Outcome {
	if !s.runMu.TryLock() {
		return Outcome{Err: ErrRunInProgress}
	}
	defer s.runMu.Unlock()

	if s.disabled.Load() {
		return Outcome{Err: ErrDisabled}
	}

	runID := uuid.NewString()[:8]
	log := logging.WithRun(s.logger, runID)
	start := s.now()
	out := Outcome{RunID: runID}

	since := s.since
	s.mu.Lock()
	if !s.lastRun.IsZero() {
		since = s.lastRun
	}
	s.mu.Unlock()

	log.Info("sync run starting", slog.Time("since", since))

	s.state.Load()

	identities, err := s.api.ResolveIdentities(ctx, s.identities)
	if err != nil {
		s.finishRun(ctx, log, start, s.abort(&out, err, "resolving identities"))
		return out
	}

	handled := make(map[string]bool)
	for _, src := range s.enabledSources() {
		candidates, err := src.list(ctx, identities, since)
		if err != nil {
			if s.runStopping(err) {
				s.finishRun(ctx, log, start, s.abort(&out, err, "listing "+src.name))
				return out
			}
			log.Error("listing candidates failed", logging.Source(src.name), logging.Err(err))
			out.Err = err
			continue
		}
		log.Debug("candidates discovered", logging.Source(src.name), slog.Int("count", len(candidates)))

		for _, c := range candidates {
			if handled[c.UUID] {
				continue
			}
			handled[c.UUID] = true
			if stop := s.processCandidate(ctx, log, src.name, c, &out); stop {
				s.finishRun(ctx, log, start, &out)
				return out
			}
		}
	}

	// Only a run that saw every source advances the discovery window;
	// otherwise the next run would skip whatever the failing source held.
	if out.Err == nil {
		s.mu.Lock()
		s.lastRun = start
		s.mu.Unlock()
	}

	s.finishRun(ctx, log, start, &out)
	return out
}

type source struct {
	name string
	list func(ctx context.Context, identities []string, since time.Time) ([]zoom.Candidate, error)
}

func (s *Syncer) enabledSources() []source {
	var sources []source
	if s.recordings {
		sources = append(sources, source{SourceRecordings, s.api.ListCandidates})
	}
	if s.sessions {
		sources = append(sources, source{SourceSessions, s.api.ListSessionCandidates})
	}
	return sources
}

// processCandidate syncs one candidate, updating the outcome counters. It
// returns true when the error it hit must stop the whole run.
func (s *Syncer) processCandidate(ctx context.Context, log *slog.Logger, src string, c zoom.Candidate, out *Outcome) bool {
	if s.state.IsSynced(c.UUID) {
		out.Skipped++
		return false
	}

	// A document another writer materialized counts as synced; record it
	// instead of producing a disambiguated duplicate.
	if name, ok := s.writer.Existing(c); ok {
		log.Info("reconciled existing document", logging.Meeting(c.UUID), slog.String("file", name))
		s.state.MarkSynced(c.UUID, name)
		if err := s.state.Save(); err != nil {
			log.Error("saving sync state failed", logging.Err(err))
		}
		out.Skipped++
		return false
	}

	raw, err := s.api.DownloadTranscript(ctx, c.TranscriptURL)
	if err != nil {
		switch {
		case zoom.IsNotFound(err):
			log.Info("transcript no longer available", logging.Meeting(c.UUID))
			out.Missing++
			return false
		case s.runStopping(err):
			s.abort(out, err, "downloading transcript")
			return true
		default:
			log.Error("downloading transcript failed", logging.Meeting(c.UUID), logging.Err(err))
			out.Failed++
			s.metrics.RecordItemFailures(ctx, src, 1)
			return false
		}
	}

	participants, err := s.api.ListParticipants(ctx, c.UUID)
	if err != nil {
		if s.runStopping(err) {
			s.abort(out, err, "listing participants")
			return true
		}
		// The document is still worth writing without an attendee list.
		log.Warn("listing participants failed", logging.Meeting(c.UUID), logging.Err(err))
		participants = nil
	}

	name, err := s.writer.Write(c, raw, participants)
	if err != nil {
		log.Error("writing document failed", logging.Meeting(c.UUID), logging.Err(err))
		out.Failed++
		s.metrics.RecordItemFailures(ctx, src, 1)
		return false
	}

	s.state.MarkSynced(c.UUID, name)
	if err := s.state.Save(); err != nil {
		log.Error("saving sync state failed", logging.Err(err))
	}
	log.Info("transcript synced", logging.Meeting(c.UUID), logging.Source(src), slog.String("file", name))
	out.Synced++
	s.metrics.RecordDocuments(ctx, src, 1)
	return false
}

// runStopping reports whether the error must end the run: authentication
// failures additionally disable future runs until credentials are verified
// again, and rate limiting stops the run so the next interval retries with a
// clean budget.
func (s *Syncer) runStopping(err error) bool {
	if zoom.IsAuth(err) {
		s.tokens.Invalidate()
		s.disabled.Store(true)
		return true
	}
	return zoom.IsRateLimit(err)
}

func (s *Syncer) abort(out *Outcome, err error, during string) *Outcome {
	out.Aborted = true
	out.Err = err
	s.logger.Error("sync run aborted", logging.Operation(during), logging.Err(err))
	return out
}

func (s *Syncer) finishRun(ctx context.Context, log *slog.Logger, start time.Time, out *Outcome) {
	duration := s.now().Sub(start)
	s.metrics.RecordRun(ctx, out.Result(), duration)
	log.Info("sync run finished",
		logging.Status(out.Result()),
		slog.Int("synced", out.Synced),
		slog.Int("skipped", out.Skipped),
		slog.Int("failed", out.Failed),
		slog.Int("missing", out.Missing),
		slog.Duration(logging.KeyDuration, duration),
	)
}
