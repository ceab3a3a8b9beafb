// Package state persists the sync ledger: a JSON map from recording id to
// the time and filename of its materialized document.
//
// The ledger lives at a fixed relative path inside the target folder and is
// shared with any other writer targeting the same folder, so it is read
// fresh at the start of every run and committed after every successful item;
// a crash mid-run loses at most the in-flight item. Corrupt or missing state
// resets to empty rather than failing the run.
package state
