// Package oauth owns the OAuth2 user credential lifecycle: acquire
// interactively, persist to a cache file, refresh when expired, reuse
// otherwise. The identity-provider exchange is behind an interface so
// tests never touch the network or a browser.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/oauth2"

	"cliprelay/internal/application"
	"cliprelay/internal/ports"
)

// state is the manager's explicit credential state. Keeping it a tagged
// value (rather than inferring it from nullable fields) makes the
// refresh-vs-reauthorize decision auditable.
type state int

const (
	stateNoCredential state = iota // nothing loaded yet
	stateLoaded                    // token in memory, possibly expired
	stateNeedsAuth                 // interactive authorization required
)

// Options configures a Manager. Paths are absolute (the config loader
// resolves them).
type Options struct {
	ClientSecretsFile string
	TokenFile         string
	Scopes            []string
	Logf              func(format string, args ...any)
}

// Manager produces currently-valid access tokens, minimizing interactive
// prompts. It is used from a single logical thread (the watch loop or a
// one-shot command); no locking is needed.
type Manager struct {
	opts  Options
	state state
	token *oauth2.Token

	// test seams
	newFlow func() (exchanger, error)
	openURL func(url string) error
	logf    func(format string, args ...any)
}

var _ ports.CredentialSource = (*Manager)(nil)

// NewManager creates a credential manager. No I/O happens until the
// first Token call.
func NewManager(opts Options) *Manager {
	m := &Manager{
		opts:    opts,
		state:   stateNoCredential,
		openURL: OpenBrowser,
		logf:    opts.Logf,
	}
	m.newFlow = func() (exchanger, error) {
		return newGoogleFlow(opts.ClientSecretsFile, opts.Scopes)
	}
	if m.logf == nil {
		m.logf = log.Printf
	}
	return m
}

// Token returns a currently-valid access token, driving the state
// machine as far as needed: cache load, refresh, or a blocking
// interactive authorization.
func (m *Manager) Token(ctx context.Context) (string, error) {
	for {
		switch m.state {
		case stateNoCredential:
			tok, err := readTokenCache(m.opts.TokenFile)
			if err != nil {
				// Missing or corrupt cache: start over interactively.
				m.state = stateNeedsAuth
				continue
			}
			m.token = tok
			m.state = stateLoaded

		case stateLoaded:
			if m.token.Valid() {
				return m.token.AccessToken, nil
			}
			if m.token.RefreshToken != "" {
				refreshed, err := m.refresh(ctx)
				if err == nil {
					m.token = refreshed
					m.persist()
					continue
				}
				m.logf("[auth] token refresh failed: %v", err)
			}
			m.state = stateNeedsAuth

		case stateNeedsAuth:
			tok, err := m.authorize(ctx)
			if err != nil {
				return "", err
			}
			m.token = tok
			m.state = stateLoaded
			m.persist()
		}
	}
}

// refresh exchanges the refresh token for a fresh access token.
// Providers often omit the refresh token from refresh responses, so the
// previous one is carried over.
func (m *Manager) refresh(ctx context.Context) (*oauth2.Token, error) {
	flow, err := m.newFlow()
	if err != nil {
		return nil, err
	}
	refreshed, err := flow.Refresh(ctx, m.token)
	if err != nil {
		return nil, err
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = m.token.RefreshToken
	}
	return refreshed, nil
}

// authorize drives the interactive authorization-code exchange: local
// loopback callback, PKCE S256, CSRF state check, browser hand-off.
// It blocks until the operator completes the consent step or ctx is
// cancelled.
func (m *Manager) authorize(ctx context.Context) (*oauth2.Token, error) {
	flow, err := m.newFlow()
	if err != nil {
		return nil, err
	}

	srv, err := newCallbackServer()
	if err != nil {
		return nil, fmt.Errorf("%w: starting callback listener: %v", application.ErrAuthUnavailable, err)
	}
	defer srv.stop()

	stateParam, err := randomState()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrAuthUnavailable, err)
	}
	verifier := oauth2.GenerateVerifier()
	authURL := flow.AuthCodeURL(stateParam, verifier, srv.redirectURI())

	m.logf("[auth] Starting OAuth login in browser...")
	if err := m.openURL(authURL); err != nil {
		m.logf("[auth] could not open browser: %v", err)
		m.logf("[auth] open this URL manually: %s", authURL)
	}

	result, err := srv.wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: waiting for authorization callback: %v", application.ErrAuthUnavailable, err)
	}
	if result.errCode != "" {
		return nil, fmt.Errorf("%w: provider returned %s: %s", application.ErrAuthUnavailable, result.errCode, result.errDesc)
	}
	if result.state != stateParam {
		return nil, fmt.Errorf("%w: state mismatch in authorization callback", application.ErrAuthUnavailable)
	}
	if result.code == "" {
		return nil, fmt.Errorf("%w: authorization callback carried no code", application.ErrAuthUnavailable)
	}

	tok, err := flow.Exchange(ctx, result.code, verifier, srv.redirectURI())
	if err != nil {
		return nil, fmt.Errorf("%w: exchanging authorization code: %v", application.ErrAuthUnavailable, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: provider returned an empty access token", application.ErrAuthUnavailable)
	}
	return tok, nil
}

// persist writes the current token to the cache file. Failure to persist
// is logged but does not invalidate the in-memory credential.
func (m *Manager) persist() {
	if err := writeTokenCache(m.opts.TokenFile, m.token); err != nil {
		m.logf("[auth] could not write token cache: %v", err)
	}
}

// IsAuthUnavailable reports whether err means no token could be obtained.
func IsAuthUnavailable(err error) bool {
	return errors.Is(err, application.ErrAuthUnavailable)
}
