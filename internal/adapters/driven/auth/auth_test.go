package auth

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

func TestNullTokenProvider(t *testing.T) {
	p := NewNullTokenProvider()

	token, err := p.GetToken(context.Background())

	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Equal(t, domain.AuthMethodNone, p.AuthMethod())
	assert.False(t, p.IsAuthenticated())
}

func TestPATProvider(t *testing.T) {
	t.Run("returns the token", func(t *testing.T) {
		p := NewPATProvider("ghp_abc", "--token")

		token, err := p.GetToken(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "ghp_abc", token)
		assert.Equal(t, domain.AuthMethodPAT, p.AuthMethod())
		assert.True(t, p.IsAuthenticated())
		assert.Equal(t, "--token", p.Source())
	})

	t.Run("empty token is an auth error", func(t *testing.T) {
		p := NewPATProvider("", "config")

		_, err := p.GetToken(context.Background())

		assert.ErrorIs(t, err, domain.ErrAuthRequired)
		assert.False(t, p.IsAuthenticated())
	})
}

func TestResolve(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	tests := []struct {
		name       string
		src        Sources
		wantToken  string
		wantSource string
	}{
		{
			name:       "flag wins",
			src:        Sources{Flag: "f", Config: "c", Getenv: env(map[string]string{EnvToken: "e"})},
			wantToken:  "f",
			wantSource: "--token",
		},
		{
			name:       "own env var before GITHUB_TOKEN",
			src:        Sources{Getenv: env(map[string]string{EnvToken: "mine", EnvGitHubToken: "gh"})},
			wantToken:  "mine",
			wantSource: EnvToken,
		},
		{
			name:       "GITHUB_TOKEN before config",
			src:        Sources{Config: "c", Getenv: env(map[string]string{EnvGitHubToken: "gh"})},
			wantToken:  "gh",
			wantSource: EnvGitHubToken,
		},
		{
			name:       "config last",
			src:        Sources{Config: " c ", Getenv: env(nil)},
			wantToken:  "c",
			wantSource: "config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Resolve(tt.src)

			pat, ok := p.(*PATProvider)
			require.True(t, ok)
			token, err := pat.GetToken(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantSource, pat.Source())
		})
	}

	t.Run("no token is anonymous", func(t *testing.T) {
		p := Resolve(Sources{Getenv: env(nil)})

		assert.IsType(t, &NullTokenProvider{}, p)
	})
}

func TestPromptToken(t *testing.T) {
	pipe := func(t *testing.T, input string) *os.File {
		t.Helper()
		r, w, err := os.Pipe()
		require.NoError(t, err)
		_, err = w.WriteString(input)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		t.Cleanup(func() { r.Close() })
		return r
	}

	t.Run("reads a line from a non-terminal", func(t *testing.T) {
		var out bytes.Buffer

		token, err := PromptToken(pipe(t, "ghp_xyz\n"), &out)

		require.NoError(t, err)
		assert.Equal(t, "ghp_xyz", token)
		assert.Contains(t, out.String(), "GitHub token:")
	})

	t.Run("empty input is an auth error", func(t *testing.T) {
		_, err := PromptToken(pipe(t, "\n"), &bytes.Buffer{})

		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})
}
