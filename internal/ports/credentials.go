package ports

import "context"

// CredentialSource produces a currently-valid access token for
// authenticated delivery. Implementations own acquisition, caching and
// refresh; callers must not send an authenticated request without a token.
//
// Token may block for a long time when an interactive authorization step
// is required.
type CredentialSource interface {
	Token(ctx context.Context) (string, error)
}
