package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/i18nscout/internal/classifier"
	"github.com/custodia-labs/i18nscout/internal/core/domain"
	"github.com/custodia-labs/i18nscout/internal/core/ports/driven"
	"github.com/custodia-labs/i18nscout/internal/core/ports/driving"
	"github.com/custodia-labs/i18nscout/internal/logger"
	"github.com/custodia-labs/i18nscout/internal/metrics"
)

// Ensure ScanService implements the interface.
var _ driving.Scanner = (*ScanService)(nil)

// DefaultWorkers is the number of repositories scanned concurrently.
const DefaultWorkers = 4

// ScanOptions configures a ScanService.
type ScanOptions struct {
	// Workers bounds concurrent repository scans. Values below 1 use
	// DefaultWorkers.
	Workers int

	// Branch overrides every repository's default branch when set.
	Branch string

	// Filter drops repositories before scanning. Nil keeps all.
	Filter func([]domain.Repository) []domain.Repository
}

// ScanService finds translation files in a user's repositories.
type ScanService struct {
	platform driven.Platform
	paths    *classifier.PathClassifier
	content  *classifier.ContentClassifier
	opts     ScanOptions
	now      func() time.Time
}

// NewScanService creates a scan service. Nil classifiers use the defaults.
func NewScanService(
	platform driven.Platform,
	paths *classifier.PathClassifier,
	content *classifier.ContentClassifier,
	opts ScanOptions,
) *ScanService {
	if paths == nil {
		paths = classifier.DefaultPathClassifier()
	}
	if content == nil {
		content = classifier.DefaultContentClassifier()
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	return &ScanService{
		platform: platform,
		paths:    paths,
		content:  content,
		opts:     opts,
		now:      time.Now,
	}
}

// repoOutcome is the work product of one repository.
type repoOutcome struct {
	paths   []string
	stats   domain.ScanStats
	failure *domain.RepoFailure
}

// ScanUser scans every repository owned by username. Failing to list the
// repositories fails the scan; failing to list one repository's files is
// recorded in the report and the scan continues.
func (s *ScanService) ScanUser(ctx context.Context, username string) (*domain.ScanReport, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	report := &domain.ScanReport{
		ID:        uuid.NewString(),
		User:      username,
		StartedAt: s.now(),
	}
	log := logger.Named("scan").With(zap.String("scan_id", report.ID), zap.String("user", username))

	logger.Section("Repositories of " + username)
	repos, err := s.platform.ListRepositories(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	if s.opts.Filter != nil {
		repos = s.opts.Filter(repos)
	}
	log.Info("repositories listed", zap.Int("count", len(repos)), zap.Int("workers", s.opts.Workers))

	outcomes := make([]repoOutcome, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, repo := range repos {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := s.scanRepo(gctx, repo)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, repo := range repos {
		out := outcomes[i]
		report.Stats.Merge(out.stats)
		if out.failure != nil {
			report.Failures = append(report.Failures, *out.failure)
			continue
		}
		report.Result.Add(repo.Name, out.paths)
	}
	report.FinishedAt = s.now()

	log.Info("scan finished",
		zap.Int("repositories", report.Result.Len()),
		zap.Int("files", report.Result.TotalFiles()),
		zap.Int("failures", len(report.Failures)),
		zap.Duration("duration", report.Duration()))
	return report, nil
}

// ScanRepository scans one repository. An empty branch uses the configured
// override, then the repository's default branch from the platform. A tree
// failure is returned as an error.
func (s *ScanService) ScanRepository(ctx context.Context, owner, repo, branch string) ([]string, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("%w: owner and repository are required", domain.ErrInvalidInput)
	}
	if branch == "" {
		branch = s.opts.Branch
	}

	r := domain.Repository{Name: repo, Owner: owner, DefaultBranch: branch}
	if branch == "" {
		meta, err := s.platform.GetRepository(ctx, owner, repo)
		if err != nil {
			return nil, fmt.Errorf("get repository: %w", err)
		}
		r.DefaultBranch = meta.DefaultBranch
	}

	paths, _, err := s.collect(ctx, r, r.Branch())
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// scanRepo scans one repository for ScanUser. Only cancellation is returned
// as an error; other failures are recorded in the outcome.
func (s *ScanService) scanRepo(ctx context.Context, repo domain.Repository) (repoOutcome, error) {
	branch := repo.Branch()
	if s.opts.Branch != "" {
		branch = s.opts.Branch
	}

	paths, stats, err := s.collect(ctx, repo, branch)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return repoOutcome{}, ctxErr
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return repoOutcome{}, err
		}
		logger.Warn("skipping %s: %v", repo.FullName(), err)
		metrics.RecordRepository(false)
		failure := domain.NewRepoFailure(repo.Name, err)
		return repoOutcome{stats: stats, failure: &failure}, nil
	}

	metrics.RecordRepository(true)
	if len(paths) > 0 {
		logger.Info("%s: %d translation file(s)", repo.FullName(), len(paths))
	}
	return repoOutcome{paths: paths, stats: stats}, nil
}

// collect lists a repository's tree and confirms candidates in tree order.
func (s *ScanService) collect(
	ctx context.Context, repo domain.Repository, branch string,
) ([]string, domain.ScanStats, error) {
	stats := domain.ScanStats{Repositories: 1}

	files, err := s.platform.ListFiles(ctx, repo.Owner, repo.Name, branch)
	if err != nil {
		return nil, stats, fmt.Errorf("list files of %s@%s: %w", repo.FullName(), branch, err)
	}
	stats.FilesListed = len(files)

	candidates := s.paths.Filter(files)
	stats.Candidates = len(candidates)

	var confirmed []string
	for _, file := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		metrics.RecordPathCandidate()
		logger.Debug("%s: candidate %s (%s)", repo.FullName(), file.Path, s.paths.Reason(file.Path))

		content, err := s.platform.FetchContent(ctx, repo.Owner, repo.Name, file.Path, branch)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, stats, ctxErr
			}
			logger.Debug("%s: fetch %s: %v", repo.FullName(), file.Path, err)
			continue
		}
		if content == nil {
			logger.Debug("%s: %s has no inline content", repo.FullName(), file.Path)
			continue
		}
		stats.ContentFetched++

		verdict := s.content.ClassifyFile(*content)
		metrics.RecordVerdict(verdict.String())
		if verdict.IsConfirmed() {
			confirmed = append(confirmed, file.Path)
		}
	}
	stats.Confirmed = len(confirmed)
	return confirmed, stats, nil
}
