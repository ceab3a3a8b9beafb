package state

import (
	"encoding/json"
	"errors"
	"log/slog"
	"path"
	"time"

	"github.com/zoomvault/zoomvault/internal/logging"
	"github.com/zoomvault/zoomvault/internal/vault"
)

// FormatVersion is the persisted state file format version.
const FormatVersion = 1

// FileName is the state file's fixed name inside the target folder.
const FileName = ".zoomvault-sync.json"

// ErrNotLoaded is returned by Save when Load was never called. Calling Save
// first is an implementer error, not a runtime condition to tolerate.
var ErrNotLoaded = errors.New("state: save before load")

// Entry records one materialized recording.
type Entry struct {
	SyncedAt int64  `json:"syncedAt"`
	FileName string `json:"fileName"`
}

type fileLayout struct {
	Version        int              `json:"version"`
	SyncedMeetings map[string]Entry `json:"syncedMeetings"`
}

// Store is the persisted ledger of which meeting ids have already been
// materialized in one target folder. Load reads the ledger fresh; MarkSynced
// mutates only memory; Save commits durably and atomically.
type Store struct {
	store  vault.Store
	path   string
	logger *slog.Logger
	now    func() time.Time

	loaded bool
	data   fileLayout
}

// NewStore creates a Store for the given target folder inside the vault.
func NewStore(v vault.Store, folder string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		store:  v,
		path:   path.Join(folder, FileName),
		logger: logger,
		now:    time.Now,
	}
}

// Load reads the persisted state. It never fails outward: a missing file or
// unparsable content both yield a fresh empty state.
func (s *Store) Load() {
	s.loaded = true
	s.data = fileLayout{Version: FormatVersion, SyncedMeetings: map[string]Entry{}}

	text, err := s.store.ReadText(s.path)
	if err != nil {
		if !errors.Is(err, vault.ErrNotFound) {
			s.logger.Warn("state file unreadable, starting fresh",
				logging.Operation("state.load"), logging.Err(err))
		}
		return
	}

	var parsed fileLayout
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		s.logger.Warn("state file unparsable, starting fresh",
			logging.Operation("state.load"), logging.Err(err))
		return
	}
	if parsed.SyncedMeetings == nil {
		parsed.SyncedMeetings = map[string]Entry{}
	}
	parsed.Version = FormatVersion
	s.data = parsed
}

// IsSynced reports whether the recording id is already in the ledger.
func (s *Store) IsSynced(id string) bool {
	_, ok := s.data.SyncedMeetings[id]
	return ok
}

// Entry returns the ledger entry for a recording id, if present.
func (s *Store) Entry(id string) (Entry, bool) {
	e, ok := s.data.SyncedMeetings[id]
	return e, ok
}

// MarkSynced records a successful write in memory; it does not persist.
// Callers must Save to commit.
func (s *Store) MarkSynced(id, fileName string) {
	s.data.SyncedMeetings[id] = Entry{
		SyncedAt: s.now().UnixMilli(),
		FileName: fileName,
	}
}

// Count returns how many recordings the ledger holds.
func (s *Store) Count() int {
	return len(s.data.SyncedMeetings)
}

// Save persists the state durably via the store's atomic write. It fails if
// Load was never called.
func (s *Store) Save() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	b, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return s.store.WriteText(s.path, string(b))
}
