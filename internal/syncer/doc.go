// Package syncer orchestrates complete sync runs: it resolves identities,
// discovers transcript candidates from the enabled sources, downloads each
// transcript and materializes it as a document, recording every success in
// the sync state so runs stay idempotent.
package syncer
