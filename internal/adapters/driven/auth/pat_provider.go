package auth

import (
	"context"
	"fmt"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
	"github.com/custodia-labs/i18nscout/internal/core/ports/driven"
)

// Ensure PATProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*PATProvider)(nil)

// PATProvider provides a static Personal Access Token.
// PATs don't expire and don't require refresh.
type PATProvider struct {
	token  string
	source string
}

// NewPATProvider creates a token provider for a PAT. source names where the
// token came from (flag, env var, config) for diagnostics.
func NewPATProvider(token, source string) *PATProvider {
	return &PATProvider{token: token, source: source}
}

// GetToken returns the PAT.
func (p *PATProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("%w: empty token from %s", domain.ErrAuthRequired, p.source)
	}
	return p.token, nil
}

// AuthMethod returns AuthMethodPAT.
func (p *PATProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodPAT
}

// IsAuthenticated returns true if the token is non-empty.
func (p *PATProvider) IsAuthenticated() bool {
	return p.token != ""
}

// Source returns where the token came from.
func (p *PATProvider) Source() string {
	return p.source
}
