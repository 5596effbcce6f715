package driven

import (
	"context"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// Platform is the code-hosting API consumed by the scanner.
// Implementations must be safe for concurrent use.
type Platform interface {
	// ListRepositories returns every repository owned by username.
	ListRepositories(ctx context.Context, username string) ([]domain.Repository, error)

	// GetRepository returns one repository's metadata.
	GetRepository(ctx context.Context, owner, repo string) (domain.Repository, error)

	// ListFiles returns the blob entries of a repository tree at branch.
	ListFiles(ctx context.Context, owner, repo, branch string) ([]domain.FileEntry, error)

	// FetchContent returns the decoded text of a file.
	// It returns nil content and a nil error when the platform does not
	// serve the file inline.
	FetchContent(ctx context.Context, owner, repo, path, branch string) (*domain.FileContent, error)

	// ListFollowing returns the logins username follows.
	ListFollowing(ctx context.Context, username string) ([]string, error)
}
