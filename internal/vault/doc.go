// Package vault provides the document-store capability interface the sync
// engine writes through, plus a local-directory implementation.
//
// The interface is deliberately small: existence check, text read/write,
// create-if-absent and folder creation. WriteText commits atomically via a
// temp file and rename; CreateIfAbsent is the last line of defense against
// two writers racing on the same path.
package vault
