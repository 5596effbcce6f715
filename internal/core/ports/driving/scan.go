package driving

import (
	"context"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// Scanner discovers translation files across repositories.
type Scanner interface {
	// ScanUser scans every repository owned by username.
	ScanUser(ctx context.Context, username string) (*domain.ScanReport, error)

	// ScanRepository scans one repository. An empty branch uses the
	// scanner's branch override, then "main".
	ScanRepository(ctx context.Context, owner, repo, branch string) ([]string, error)
}

// FollowingLister lists the accounts a user follows.
type FollowingLister interface {
	ListFollowing(ctx context.Context, username string) ([]string, error)
}
