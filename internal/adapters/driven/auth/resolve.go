package auth

import (
	"os"
	"strings"

	"github.com/custodia-labs/i18nscout/internal/core/ports/driven"
)

// Environment variables consulted for a token, in priority order.
const (
	EnvToken       = "I18NSCOUT_TOKEN"
	EnvGitHubToken = "GITHUB_TOKEN"
)

// Sources lists the places a token may come from.
type Sources struct {
	Flag   string
	Config string

	// Getenv reads environment variables. Nil uses os.Getenv.
	Getenv func(string) string
}

// Resolve picks the first non-empty token: flag, I18NSCOUT_TOKEN,
// GITHUB_TOKEN, then config. Without one it returns a NullTokenProvider.
func Resolve(src Sources) driven.TokenProvider {
	getenv := src.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	candidates := []struct {
		source string
		token  string
	}{
		{"--token", src.Flag},
		{EnvToken, getenv(EnvToken)},
		{EnvGitHubToken, getenv(EnvGitHubToken)},
		{"config", src.Config},
	}
	for _, c := range candidates {
		if token := strings.TrimSpace(c.token); token != "" {
			return NewPATProvider(token, c.source)
		}
	}
	return NewNullTokenProvider()
}
