package auth

import (
	"context"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
	"github.com/custodia-labs/i18nscout/internal/core/ports/driven"
)

// Ensure NullTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*NullTokenProvider)(nil)

// NullTokenProvider sends requests anonymously.
type NullTokenProvider struct{}

// NewNullTokenProvider creates a token provider for anonymous access.
func NewNullTokenProvider() *NullTokenProvider {
	return &NullTokenProvider{}
}

// GetToken returns an empty string.
func (p *NullTokenProvider) GetToken(_ context.Context) (string, error) {
	return "", nil
}

// AuthMethod returns AuthMethodNone.
func (p *NullTokenProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodNone
}

// IsAuthenticated returns false; anonymous requests get the low quota.
func (p *NullTokenProvider) IsAuthenticated() bool {
	return false
}
