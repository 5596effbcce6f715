package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// ListFollowing returns the logins of the accounts username follows.
func (c *Client) ListFollowing(ctx context.Context, username string) ([]string, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	users, err := ListAll[*gh.User](ctx, c, c.cfg.Endpoints.Following(username), c.cfg.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list following for %s: %w", username, err)
	}

	logins := make([]string, 0, len(users))
	for _, u := range users {
		if login := u.GetLogin(); login != "" {
			logins = append(logins, login)
		}
	}
	return logins, nil
}
