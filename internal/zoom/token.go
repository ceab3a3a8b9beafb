package zoom

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/zoomvault/zoomvault/internal/logging"
)

// tokenExpiryBuffer is the safety margin before the declared expiry at which
// a cached token is considered stale.
const tokenExpiryBuffer = 60 * time.Second

// DefaultTokenURL is Zoom's server-to-server OAuth token endpoint.
const DefaultTokenURL = "https://zoom.us/oauth/token"

// Credentials is the server-to-server OAuth credentials triple. It is
// immutable configuration and must never be persisted alongside sync state
// or logged.
type Credentials struct {
	AccountID    string
	ClientID     string
	ClientSecret string
}

// TokenManager owns client-credentials token acquisition and in-memory
// caching. Tokens are held only in memory, superseded (not mutated) on
// refresh, and invalidated explicitly on authentication failure.
type TokenManager struct {
	conf      clientcredentials.Config
	exec      *Executor
	logger    *slog.Logger
	now       func() time.Time
	onRefresh func()

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenManager creates a TokenManager for the given credentials.
// tokenURL defaults to DefaultTokenURL when empty.
func NewTokenManager(creds Credentials, tokenURL string, exec *Executor, logger *slog.Logger) *TokenManager {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenManager{
		conf: clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
			EndpointParams: url.Values{
				"grant_type": {"account_credentials"},
				"account_id": {creds.AccountID},
			},
		},
		exec:   exec,
		logger: logger,
		now:    time.Now,
	}
}

// Token returns a cached token while its expiry is more than the safety
// buffer away, otherwise performs a blocking client-credentials exchange and
// caches the result with its provider-declared lifetime.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && m.now().Add(tokenExpiryBuffer).Before(m.expiresAt) {
		return m.token, nil
	}

	var tok *oauth2.Token
	err := m.exec.Do(ctx, "token.fetch", func(ctx context.Context) error {
		t, err := m.conf.Token(ctx)
		if err != nil {
			return classifyTokenError(err)
		}
		tok = t
		return nil
	})
	if err != nil {
		return "", err
	}

	m.token = tok.AccessToken
	m.expiresAt = tok.Expiry
	m.logger.Debug("access token refreshed",
		logging.Operation("token.fetch"),
		slog.Time("expires_at", tok.Expiry),
		slog.String("token", logging.SanitizeToken(tok.AccessToken)))
	if m.onRefresh != nil {
		m.onRefresh()
	}
	return m.token, nil
}

// SetRefreshHook registers a callback invoked after every successful token
// exchange, e.g. to count refreshes. Must be called before the manager is
// shared between goroutines.
func (m *TokenManager) SetRefreshHook(fn func()) {
	m.onRefresh = fn
}

// Invalidate clears the cached token unconditionally. It is idempotent and
// safe to call with no cached token.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.expiresAt = time.Time{}
}

// classifyTokenError converts an oauth2 exchange failure into the structured
// taxonomy. Zoom answers rejected client credentials with 400 or 401.
func classifyTokenError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		switch {
		case re.Response.StatusCode == http.StatusBadRequest,
			re.Response.StatusCode == http.StatusUnauthorized:
			return &AuthError{Op: "token.fetch", Status: re.Response.StatusCode, Detail: re.ErrorDescription}
		case re.Response.StatusCode == http.StatusTooManyRequests:
			return &RateLimitError{Op: "token.fetch", RetryAfter: parseRetryAfter(re.Response.Header.Get("Retry-After"))}
		default:
			return &TransportError{Op: "token.fetch", Status: re.Response.StatusCode, Err: err}
		}
	}
	return &TransportError{Op: "token.fetch", Err: err}
}
