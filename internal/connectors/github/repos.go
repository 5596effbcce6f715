package github

import (
	"context"
	"encoding/json"
	"fmt"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// FilterOptions selects repositories to drop before scanning.
type FilterOptions struct {
	SkipForks    bool
	SkipArchived bool
}

// ListRepositories returns every repository owned by username, in API order.
func (c *Client) ListRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	repos, err := ListAll[*gh.Repository](ctx, c, c.cfg.Endpoints.Repos(username), c.cfg.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list repositories for %s: %w", username, err)
	}

	out := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}
		out = append(out, toRepository(r, username))
	}
	return out, nil
}

// GetRepository returns one repository's metadata.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (domain.Repository, error) {
	if owner == "" || repo == "" {
		return domain.Repository{}, fmt.Errorf("%w: owner and repository are required", domain.ErrInvalidInput)
	}

	resp, err := c.Get(ctx, c.cfg.Endpoints.Repo(owner, repo))
	if err != nil {
		return domain.Repository{}, fmt.Errorf("get repository %s/%s: %w", owner, repo, err)
	}

	var r gh.Repository
	if err := json.Unmarshal(resp.Body, &r); err != nil {
		return domain.Repository{}, fmt.Errorf("%w: repository %s/%s: %w", ErrUnexpectedResponse, owner, repo, err)
	}
	out := toRepository(&r, owner)
	if out.Name == "" {
		out.Name = repo
	}
	return out, nil
}

func toRepository(r *gh.Repository, username string) domain.Repository {
	owner := r.GetOwner().GetLogin()
	if owner == "" {
		owner = username
	}
	branch := r.GetDefaultBranch()
	if branch == "" {
		branch = domain.DefaultBranch
	}
	return domain.Repository{
		Name:          r.GetName(),
		Owner:         owner,
		DefaultBranch: branch,
		Fork:          r.GetFork(),
		Archived:      r.GetArchived(),
	}
}

// FilterRepositories drops repositories according to opts, keeping order.
func FilterRepositories(repos []domain.Repository, opts FilterOptions) []domain.Repository {
	filtered := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		if r.Archived && opts.SkipArchived {
			continue
		}
		if r.Fork && opts.SkipForks {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
