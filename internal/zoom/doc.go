// Package zoom provides a client for the Zoom cloud REST API.
//
// The package owns the full outbound surface of the sync engine: the
// server-to-server OAuth token lifecycle (TokenManager), the retry/backoff
// policy every call goes through (Executor), paginated multi-source
// recording discovery, and authenticated transcript download.
//
// Errors crossing the package boundary are structured: AuthError,
// RateLimitError, TransportError, NotFoundError and RequestError are created
// once, where the transport layer inspects the response, so callers classify
// with errors.As instead of matching message strings.
//
// Example usage:
//
//	exec := zoom.NewExecutor(logger)
//	tokens := zoom.NewTokenManager(creds, "", exec, logger)
//	client := zoom.NewClient("", tokens, exec, logger)
//
//	identities, err := client.ResolveIdentities(ctx, cfg.Identities)
//	if err != nil {
//	    return err
//	}
//	candidates, err := client.ListCandidates(ctx, identities, since)
package zoom
