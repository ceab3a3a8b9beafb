package note

import (
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/zoomvault/zoomvault/internal/vault"
	"github.com/zoomvault/zoomvault/internal/zoom"
)

// Writer commits formatted transcript documents into one target folder of
// the document store, resolving filename collisions.
type Writer struct {
	store  vault.Store
	folder string
	logger *slog.Logger
	now    func() time.Time
}

// NewWriter creates a Writer targeting folder inside the store.
func NewWriter(store vault.Store, folder string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{store: store, folder: folder, logger: logger, now: time.Now}
}

// Existing returns the filename already present for the candidate's
// non-disambiguated path, if any. Orchestrators use it to reconcile against
// documents another writer materialized.
func (w *Writer) Existing(c zoom.Candidate) (string, bool) {
	name := Filename(c, false)
	if w.store.Exists(path.Join(w.folder, name)) {
		return name, true
	}
	return "", false
}

// Write builds the complete document for the candidate and commits it,
// returning the filename used. If a file already exists at the
// non-disambiguated path the name is regenerated with the numeric id.
// The check-then-write is not cross-process-atomic; the store's
// create-if-absent commit is the last line of defense against that race.
func (w *Writer) Write(c zoom.Candidate, rawTranscript string, participants []zoom.Participant) (string, error) {
	name := Filename(c, false)
	if w.store.Exists(path.Join(w.folder, name)) {
		name = Filename(c, true)
	}

	doc := BuildDocument(c, strings.TrimSuffix(name, Extension), rawTranscript, participants, w.now())

	if err := w.store.EnsureFolder(w.folder); err != nil {
		return "", err
	}
	if _, err := w.store.CreateIfAbsent(path.Join(w.folder, name), doc); err != nil {
		return "", err
	}
	return name, nil
}
