package github

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com"

	// DefaultPerPage is the page size for list endpoints. It is also the
	// platform maximum.
	DefaultPerPage = 100

	// DefaultMaxRateLimitRetries caps consecutive rate-limit responses for
	// one request.
	DefaultMaxRateLimitRetries = 10

	// DefaultMaxWait caps a single rate-limit wait. The primary window is one
	// hour, plus the safety margin.
	DefaultMaxWait = time.Hour + 5*time.Minute
)

// Endpoints holds the URL templates of the consumed API surface.
// Placeholders are {user}, {owner}, {repo}, {ref} and {path}.
type Endpoints struct {
	BaseURL       string
	ReposPath     string
	RepoPath      string
	TreePath      string
	ContentsPath  string
	FollowingPath string
}

// DefaultEndpoints returns the GitHub REST API endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		BaseURL:       DefaultBaseURL,
		ReposPath:     "/users/{user}/repos",
		RepoPath:      "/repos/{owner}/{repo}",
		TreePath:      "/repos/{owner}/{repo}/git/trees/{ref}",
		ContentsPath:  "/repos/{owner}/{repo}/contents/{path}",
		FollowingPath: "/users/{user}/following",
	}
}

// Repos returns the repository listing URL for user.
func (e Endpoints) Repos(user string) string {
	return e.expand(e.ReposPath, map[string]string{"user": url.PathEscape(user)})
}

// Repo returns the URL of a single repository.
func (e Endpoints) Repo(owner, repo string) string {
	return e.expand(e.RepoPath, map[string]string{
		"owner": url.PathEscape(owner),
		"repo":  url.PathEscape(repo),
	})
}

// Tree returns the recursive tree URL for a ref.
func (e Endpoints) Tree(owner, repo, ref string) string {
	return e.expand(e.TreePath, map[string]string{
		"owner": url.PathEscape(owner),
		"repo":  url.PathEscape(repo),
		"ref":   url.PathEscape(ref),
	}) + "?recursive=1"
}

// Contents returns the contents URL for a file at a ref.
func (e Endpoints) Contents(owner, repo, path, ref string) string {
	return e.expand(e.ContentsPath, map[string]string{
		"owner": url.PathEscape(owner),
		"repo":  url.PathEscape(repo),
		"path":  escapePath(path),
	}) + "?ref=" + url.QueryEscape(ref)
}

// Following returns the URL listing accounts user follows.
func (e Endpoints) Following(user string) string {
	return e.expand(e.FollowingPath, map[string]string{"user": url.PathEscape(user)})
}

func (e Endpoints) expand(template string, values map[string]string) string {
	out := template
	for k, v := range values {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return strings.TrimRight(e.BaseURL, "/") + out
}

// escapePath escapes each segment of a repository path, keeping separators.
func escapePath(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// Config holds client settings.
type Config struct {
	// Endpoints is the API surface. Zero fields fall back to GitHub.
	Endpoints Endpoints

	// PerPage is the page size for list endpoints (1-100).
	PerPage int

	// RequestsPerSecond throttles requests proactively. Zero disables it.
	RequestsPerSecond float64

	// SafetyMargin is added to every rate-limit reset.
	SafetyMargin time.Duration

	// MaxRateLimitRetries caps consecutive rate-limit responses per request.
	MaxRateLimitRetries int

	// MaxWait refuses rate-limit waits longer than this.
	MaxWait time.Duration

	// Timeout bounds a single HTTP request.
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		Endpoints:           DefaultEndpoints(),
		PerPage:             DefaultPerPage,
		RequestsPerSecond:   ProactiveRate,
		SafetyMargin:        SafetyMargin,
		MaxRateLimitRetries: DefaultMaxRateLimitRetries,
		MaxWait:             DefaultMaxWait,
		Timeout:             DefaultTimeout,
	}
}

// normalize fills zero values with defaults and clamps PerPage.
func (c *Config) normalize() error {
	def := DefaultEndpoints()
	if c.Endpoints.BaseURL == "" {
		c.Endpoints.BaseURL = def.BaseURL
	}
	if c.Endpoints.ReposPath == "" {
		c.Endpoints.ReposPath = def.ReposPath
	}
	if c.Endpoints.RepoPath == "" {
		c.Endpoints.RepoPath = def.RepoPath
	}
	if c.Endpoints.TreePath == "" {
		c.Endpoints.TreePath = def.TreePath
	}
	if c.Endpoints.ContentsPath == "" {
		c.Endpoints.ContentsPath = def.ContentsPath
	}
	if c.Endpoints.FollowingPath == "" {
		c.Endpoints.FollowingPath = def.FollowingPath
	}

	u, err := url.Parse(c.Endpoints.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q", ErrConfigInvalid, c.Endpoints.BaseURL)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests per second must not be negative", ErrConfigInvalid)
	}

	c.PerPage = normalizePerPage(c.PerPage)
	if c.MaxRateLimitRetries <= 0 {
		c.MaxRateLimitRetries = DefaultMaxRateLimitRetries
	}
	if c.MaxWait <= 0 {
		c.MaxWait = DefaultMaxWait
	}
	if c.SafetyMargin < 0 {
		c.SafetyMargin = 0
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

func normalizePerPage(n int) int {
	if n <= 0 {
		return DefaultPerPage
	}
	if n > DefaultPerPage {
		return DefaultPerPage
	}
	return n
}
