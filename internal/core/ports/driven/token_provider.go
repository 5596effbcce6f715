package driven

import (
	"context"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// TokenProvider provides the credential for authenticated API calls.
type TokenProvider interface {
	// GetToken returns the access token.
	// Returns empty string when requests are sent anonymously.
	GetToken(ctx context.Context) (string, error)

	// AuthMethod returns the authentication method (pat, none).
	AuthMethod() domain.AuthMethod

	// IsAuthenticated returns true if a credential is available.
	IsAuthenticated() bool
}
