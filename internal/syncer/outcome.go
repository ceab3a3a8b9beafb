package syncer

import (
	"fmt"

	"github.com/zoomvault/zoomvault/internal/instrumentation"
)

// Outcome reports what a single run did.
type Outcome struct {
	// RunID identifies the run in logs.
	RunID string

	// Synced counts documents materialized by this run.
	Synced int

	// Skipped counts candidates that were already synced.
	Skipped int

	// Failed counts candidates that errored without stopping the run.
	Failed int

	// Missing counts candidates whose transcript was gone by download
	// time.
	Missing int

	// Aborted is set when a run-stopping error ended the run early.
	Aborted bool

	// Err is the error that aborted the run, or a source-level error on a
	// partial run.
	Err error
}

// Result maps the outcome onto a metric result label.
func (o Outcome) Result() string {
	switch {
	case o.Aborted:
		return instrumentation.ResultAborted
	case o.Synced == 0 && o.Failed == 0 && o.Err == nil:
		return instrumentation.ResultNoop
	case o.Failed == 0 && o.Err == nil:
		return instrumentation.ResultSuccess
	case o.Synced > 0:
		return instrumentation.ResultPartial
	default:
		return instrumentation.ResultFailure
	}
}

// Summary renders a one-line, user-facing result. A run that changed
// nothing and failed nothing returns the empty string so periodic runs stay
// quiet.
func (o Outcome) Summary() string {
	switch {
	case o.Synced == 0 && o.Failed == 0:
		return ""
	case o.Failed == 0:
		return fmt.Sprintf("synced %d new meeting transcripts", o.Synced)
	case o.Synced == 0:
		return fmt.Sprintf("failed to sync %d meeting transcripts", o.Failed)
	default:
		return fmt.Sprintf("synced %d new meeting transcripts (%d failed)", o.Synced, o.Failed)
	}
}
