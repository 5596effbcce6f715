package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
	"github.com/custodia-labs/i18nscout/internal/core/ports/driven"
	"github.com/custodia-labs/i18nscout/internal/core/ports/driving"
	"github.com/custodia-labs/i18nscout/internal/logger"
)

// Ensure FollowingService implements the interface.
var _ driving.FollowingLister = (*FollowingService)(nil)

// FollowingService lists the accounts a user follows.
type FollowingService struct {
	platform driven.Platform
}

// NewFollowingService creates a following service.
func NewFollowingService(platform driven.Platform) *FollowingService {
	return &FollowingService{platform: platform}
}

// ListFollowing returns the logins username follows, in platform order.
func (s *FollowingService) ListFollowing(ctx context.Context, username string) ([]string, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	logins, err := s.platform.ListFollowing(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	logger.Debug("%s follows %d account(s)", username, len(logins))
	return logins, nil
}
