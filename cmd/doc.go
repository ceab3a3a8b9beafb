// Package cmd implements the zoomvault command line interface.
//
// The default command runs a one-shot sync pass; serve runs the same pass
// on an interval with an optional metrics endpoint, and verify checks that
// the configured credentials can mint a token.
package cmd
