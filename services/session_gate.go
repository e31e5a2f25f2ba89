package services

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"airhotel-web/dto"
	"airhotel-web/models"
	"airhotel-web/services/logger"

	"github.com/goccy/go-json"
)

// SessionAPI is what the gate needs from the REST client
type SessionAPI interface {
	CheckSession(ctx context.Context) error
	Logout(ctx context.Context) error
	LoginURL(provider string) string
	HasSessionCookie() bool
	SessionCookieName() string
	SetSessionCookie(name, value string)
	ClearSession()
}

type SessionGateOptions struct {
	API      SessionAPI
	Cache    Cache
	CacheKey string
	Provider string
	Logger   logger.Logger
}

// SessionGate tracks whether an authenticated session exists. Its state only
// changes through Initialize, ConfirmFromResponsePayload and Logout.
type SessionGate struct {
	api      SessionAPI
	cache    Cache
	cacheKey string
	provider string
	logger   logger.Logger

	mu    sync.RWMutex
	state models.SessionState
}

func NewSessionGate(opts SessionGateOptions) *SessionGate {
	log := opts.Logger
	if log == nil {
		log = logger.Nop{}
	}
	cache := opts.Cache
	if cache == nil {
		cache = NewMemoryCache()
	}
	provider := opts.Provider
	if provider == "" {
		provider = "google"
	}
	return &SessionGate{
		api:      opts.API,
		cache:    cache,
		cacheKey: opts.CacheKey,
		provider: provider,
		logger:   log,
	}
}

// Initialize recovers the session at startup. A readable indicator (a
// configured cookie or a remembered token) is enough; otherwise one silent
// session check is sent and any failure just leaves the session absent.
func (g *SessionGate) Initialize(ctx context.Context) models.SessionState {
	var token string
	if found, err := g.cache.Get(ctx, sessionKey+g.cacheKey, &token); err != nil {
		g.logger.Debug("read cached session: %v", err)
	} else if found && token != "" {
		g.api.SetSessionCookie(g.api.SessionCookieName(), token)
		g.setState(models.SessionState{Authenticated: true, Token: token})
		return g.State()
	}

	if g.api.HasSessionCookie() {
		g.setState(models.SessionState{Authenticated: true})
		return g.State()
	}

	if err := g.api.CheckSession(ctx); err != nil {
		g.logger.Debug("session check: %v", err)
		return g.State()
	}
	g.mu.Lock()
	g.state.Authenticated = true
	g.mu.Unlock()
	return g.State()
}

// ConfirmFromResponsePayload persists a fresh token carried in a session
// field and marks the session present. Payloads without one are ignored.
func (g *SessionGate) ConfirmFromResponsePayload(payload []byte) bool {
	token := ExtractSessionToken(payload)
	if token == "" {
		return false
	}
	g.api.SetSessionCookie(g.api.SessionCookieName(), token)
	if err := g.cache.Set(context.Background(), sessionKey+g.cacheKey, token, 0); err != nil {
		g.logger.Warn("persist session token: %v", err)
	}
	g.setState(models.SessionState{Authenticated: true, Token: token})
	return true
}

// RequireSession is the gate every fetch and mutation checks first
func (g *SessionGate) RequireSession() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.Authenticated
}

// Logout ends the server session. The local state is only cleared when the
// server accepted the logout.
func (g *SessionGate) Logout(ctx context.Context) error {
	if err := g.api.Logout(ctx); err != nil {
		return err
	}
	g.api.ClearSession()
	if err := g.cache.Delete(ctx, sessionKey+g.cacheKey); err != nil {
		g.logger.Warn("drop session token: %v", err)
	}
	g.setState(models.SessionState{})
	return nil
}

// LoginURL is where the browser is sent to sign in
func (g *SessionGate) LoginURL() string {
	return g.api.LoginURL(g.provider)
}

func (g *SessionGate) State() models.SessionState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

func (g *SessionGate) setState(state models.SessionState) {
	g.mu.Lock()
	g.state = state
	g.mu.Unlock()
}

// ExtractSessionToken returns the session field of a JSON object body. The
// field may be a string or an object with a token or id.
func ExtractSessionToken(payload []byte) string {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ""
	}
	var envelope struct {
		Session json.RawMessage `json:"session"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil || len(envelope.Session) == 0 {
		return ""
	}

	var plain dto.SessionEnvelope
	if err := json.Unmarshal(trimmed, &plain); err == nil {
		return strings.TrimSpace(plain.Session)
	}
	var nested struct {
		Token string `json:"token"`
		ID    string `json:"id"`
	}
	if err := json.Unmarshal(envelope.Session, &nested); err == nil {
		if nested.Token != "" {
			return strings.TrimSpace(nested.Token)
		}
		return strings.TrimSpace(nested.ID)
	}
	return ""
}
