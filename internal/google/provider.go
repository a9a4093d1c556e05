package google

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/teemow/workspace-mcp/internal/logging"
)

// stateTTL bounds how long an issued authorization state stays valid.
const stateTTL = 10 * time.Minute

// Credential holds the OAuth2 client registration and the tokens derived from it.
type Credential struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	RefreshToken string
	AccessToken  string
}

// Hooks receive the outcome of token refreshes and code exchanges.
// Either function may be nil.
type Hooks struct {
	OnRefresh  func(err error)
	OnExchange func(err error)
}

// Provider derives authenticated clients from a Credential.
type Provider struct {
	mu     sync.RWMutex
	cred   Credential
	expiry time.Time
	source oauth2.TokenSource
	states map[string]time.Time

	endpoint   oauth2.Endpoint
	baseClient *http.Client
	hooks      Hooks
	logger     *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithEndpoint overrides the OAuth2 endpoint (google.Endpoint by default).
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(p *Provider) {
		p.endpoint = endpoint
	}
}

// WithHTTPClient sets the client used for token requests and as the base
// transport of API clients.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.baseClient = client
	}
}

// WithHooks registers refresh and exchange callbacks.
func WithHooks(hooks Hooks) Option {
	return func(p *Provider) {
		p.hooks = hooks
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// NewProvider creates a Provider. No network call is made.
func NewProvider(cred Credential, opts ...Option) *Provider {
	p := &Provider{
		cred:     cred,
		states:   make(map[string]time.Time),
		endpoint: google.Endpoint,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.WithComponent(p.logger, "credentials")
	p.source = p.newSource(cred, time.Time{})
	return p
}

// Credential returns a snapshot of the current credential.
func (p *Provider) Credential() Credential {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cred
}

// Authenticated reports whether the provider holds any token.
func (p *Provider) Authenticated() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source != nil
}

func (p *Provider) oauthConfig(scopes []string) *oauth2.Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &oauth2.Config{
		ClientID:     p.cred.ClientID,
		ClientSecret: p.cred.ClientSecret,
		RedirectURL:  p.cred.RedirectURI,
		Endpoint:     p.endpoint,
		Scopes:       scopes,
	}
}

// tokenContext attaches the base client so oauth2 uses it for token requests.
func (p *Provider) tokenContext(ctx context.Context) context.Context {
	if p.baseClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, p.baseClient)
}

func (p *Provider) baseTransport() http.RoundTripper {
	if p.baseClient != nil && p.baseClient.Transport != nil {
		return p.baseClient.Transport
	}
	return http.DefaultTransport
}

// newSource builds a token source for cred, or nil when cred carries no token.
// It must not be called with p.mu held.
func (p *Provider) newSource(cred Credential, expiry time.Time) oauth2.TokenSource {
	if cred.RefreshToken == "" && cred.AccessToken == "" {
		return nil
	}
	tok := &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		Expiry:       expiry,
	}
	if tok.AccessToken == "" {
		// Force a refresh on first use.
		tok.Expiry = time.Unix(1, 0)
	}
	conf := &oauth2.Config{
		ClientID:     cred.ClientID,
		ClientSecret: cred.ClientSecret,
		RedirectURL:  cred.RedirectURI,
		Endpoint:     p.endpoint,
	}
	// The source outlives any single request, so it refreshes with a background context.
	src := conf.TokenSource(p.tokenContext(context.Background()), tok)
	return &recordingSource{provider: p, src: src, last: tok.AccessToken}
}

// HTTPClient returns a client that authenticates requests with the current
// credential. Without any token the client sends unauthenticated requests
// until an exchange stores one.
func (p *Provider) HTTPClient(ctx context.Context) (*http.Client, error) {
	if err := p.checkClient(false); err != nil {
		return nil, err
	}
	return &http.Client{
		Transport: &credentialTransport{provider: p, base: p.baseTransport()},
	}, nil
}

// ClientOptions returns the options used to construct Google API services.
func (p *Provider) ClientOptions(ctx context.Context) ([]option.ClientOption, error) {
	client, err := p.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	return []option.ClientOption{option.WithHTTPClient(client)}, nil
}

// AuthCodeURL builds an authorization URL for exactly the given scopes,
// requesting offline access and forcing the consent screen so that a
// refresh token is always issued.
func (p *Provider) AuthCodeURL(scopes []string) (string, error) {
	if err := p.checkClient(true); err != nil {
		return "", err
	}
	state := p.issueState()
	return p.oauthConfig(scopes).AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Exchange trades an authorization code for tokens and stores them.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if err := p.checkClient(true); err != nil {
		return nil, err
	}

	tok, err := p.oauthConfig(nil).Exchange(p.tokenContext(ctx), code)
	if p.hooks.OnExchange != nil {
		p.hooks.OnExchange(err)
	}
	if err != nil {
		p.logger.Warn("authorization code exchange failed", logging.Err(err))
		return nil, newAuthExchangeError(err)
	}

	p.mu.Lock()
	p.cred.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		p.cred.RefreshToken = tok.RefreshToken
	}
	p.expiry = tok.Expiry
	cred, expiry := p.cred, p.expiry
	p.mu.Unlock()

	src := p.newSource(cred, expiry)
	p.mu.Lock()
	p.source = src
	p.mu.Unlock()

	p.logger.Info("authorization code exchanged",
		logging.Token(tok.AccessToken),
		slog.Bool("refresh_token_issued", tok.RefreshToken != ""))
	return tok, nil
}

// ValidateState consumes a state value issued by AuthCodeURL.
func (p *Provider) ValidateState(state string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	issued, ok := p.states[state]
	if !ok {
		return false
	}
	delete(p.states, state)
	return time.Since(issued) <= stateTTL
}

func (p *Provider) issueState() string {
	state := uuid.NewString()
	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()
	for s, issued := range p.states {
		if now.Sub(issued) > stateTTL {
			delete(p.states, s)
		}
	}
	p.states[state] = now
	return state
}

// checkClient verifies the client registration. The redirect URI is only
// needed for the authorization flow.
func (p *Provider) checkClient(needRedirect bool) error {
	cred := p.Credential()
	var missing []string
	if cred.ClientID == "" {
		missing = append(missing, "CLIENT_ID")
	}
	if cred.ClientSecret == "" {
		missing = append(missing, "CLIENT_SECRET")
	}
	if needRedirect && cred.RedirectURI == "" {
		missing = append(missing, "REDIRECT_URI")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Fields: missing}
	}
	return nil
}

func (p *Provider) currentSource() oauth2.TokenSource {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source
}

func (p *Provider) recordRefresh(tok *oauth2.Token) {
	p.mu.Lock()
	p.cred.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		p.cred.RefreshToken = tok.RefreshToken
	}
	p.expiry = tok.Expiry
	p.mu.Unlock()

	p.logger.Debug("access token refreshed", logging.Token(tok.AccessToken))
}

// recordingSource writes refreshed tokens back into the provider credential.
type recordingSource struct {
	provider *Provider
	src      oauth2.TokenSource

	mu   sync.Mutex
	last string
}

func (s *recordingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		if s.provider.hooks.OnRefresh != nil {
			s.provider.hooks.OnRefresh(err)
		}
		return nil, err
	}

	s.mu.Lock()
	refreshed := tok.AccessToken != s.last
	s.last = tok.AccessToken
	s.mu.Unlock()

	if refreshed {
		s.provider.recordRefresh(tok)
		if s.provider.hooks.OnRefresh != nil {
			s.provider.hooks.OnRefresh(nil)
		}
	}
	return tok, nil
}

// credentialTransport resolves the token source per request, so clients
// built before an exchange pick up the new tokens.
type credentialTransport struct {
	provider *Provider
	base     http.RoundTripper
}

func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	src := t.provider.currentSource()
	if src == nil {
		return t.base.RoundTrip(req)
	}
	return (&oauth2.Transport{Source: src, Base: t.base}).RoundTrip(req)
}
