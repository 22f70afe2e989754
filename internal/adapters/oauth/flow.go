package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"cliprelay/internal/application"
)

// exchanger abstracts the identity-provider side of the authorization
// flow. The real implementation wraps oauth2.Config; tests inject fakes.
type exchanger interface {
	// AuthCodeURL builds the consent-page URL for one authorization
	// attempt, binding it to the CSRF state and PKCE verifier.
	AuthCodeURL(state, verifier, redirectURL string) string

	// Exchange trades the authorization code for tokens.
	Exchange(ctx context.Context, code, verifier, redirectURL string) (*oauth2.Token, error)

	// Refresh obtains a new access token using tok's refresh token.
	Refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error)
}

// googleFlow speaks the standard authorization-code exchange, with the
// client credentials parsed from a Google client-secret JSON file.
type googleFlow struct {
	cfg *oauth2.Config
}

// newGoogleFlow reads and parses the client secrets file. A missing
// file is a configuration error naming the path, since interactive
// authorization cannot proceed without it.
func newGoogleFlow(secretsFile string, scopes []string) (exchanger, error) {
	data, err := os.ReadFile(secretsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &application.ConfigurationError{
				Subject: secretsFile,
				Message: "OAuth client secrets file not found",
			}
		}
		return nil, fmt.Errorf("reading client secrets: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing client secrets %s: %w", secretsFile, err)
	}
	return &googleFlow{cfg: cfg}, nil
}

func (f *googleFlow) AuthCodeURL(state, verifier, redirectURL string) string {
	cfg := *f.cfg
	cfg.RedirectURL = redirectURL
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)
}

func (f *googleFlow) Exchange(ctx context.Context, code, verifier, redirectURL string) (*oauth2.Token, error) {
	cfg := *f.cfg
	cfg.RedirectURL = redirectURL
	return cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
}

func (f *googleFlow) Refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
	return f.cfg.TokenSource(ctx, tok).Token()
}

// randomState generates the CSRF state parameter linking the callback
// back to this authorization attempt.
func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
