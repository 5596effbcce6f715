package domain

import "time"

// RepoMatches holds the confirmed translation files of one repository.
type RepoMatches struct {
	// Repo is the repository name.
	Repo string `json:"repo" yaml:"repo"`

	// Paths are confirmed file paths in discovery order.
	Paths []string `json:"paths" yaml:"paths"`
}

// ScanResult maps repository names to confirmed translation file paths.
// Repositories keep the order in which they were added and
// repositories without matches are never stored.
type ScanResult struct {
	Repos []RepoMatches `json:"repos" yaml:"repos"`
}

// Add appends a repository's matches. Empty match lists are ignored.
func (r *ScanResult) Add(repo string, paths []string) {
	if len(paths) == 0 {
		return
	}
	cp := make([]string, len(paths))
	copy(cp, paths)
	r.Repos = append(r.Repos, RepoMatches{Repo: repo, Paths: cp})
}

// Paths returns the confirmed paths for a repository, or nil.
func (r *ScanResult) Paths(repo string) []string {
	for _, m := range r.Repos {
		if m.Repo == repo {
			return m.Paths
		}
	}
	return nil
}

// Len returns the number of repositories with matches.
func (r *ScanResult) Len() int {
	return len(r.Repos)
}

// TotalFiles returns the number of confirmed files across all repositories.
func (r *ScanResult) TotalFiles() int {
	n := 0
	for _, m := range r.Repos {
		n += len(m.Paths)
	}
	return n
}

// Map returns the result as a plain map. Ordering is lost.
func (r *ScanResult) Map() map[string][]string {
	out := make(map[string][]string, len(r.Repos))
	for _, m := range r.Repos {
		out[m.Repo] = m.Paths
	}
	return out
}

// RepoFailure records a repository whose tree could not be listed.
type RepoFailure struct {
	Repo string `json:"repo" yaml:"repo"`
	Err  error  `json:"-" yaml:"-"`

	// Message is Err rendered for reports.
	Message string `json:"error" yaml:"error"`
}

// NewRepoFailure builds a RepoFailure from an error.
func NewRepoFailure(repo string, err error) RepoFailure {
	f := RepoFailure{Repo: repo, Err: err}
	if err != nil {
		f.Message = err.Error()
	}
	return f
}

// ScanStats counts the work done by a scan.
type ScanStats struct {
	Repositories   int `json:"repositories" yaml:"repositories"`
	FilesListed    int `json:"files_listed" yaml:"files_listed"`
	Candidates     int `json:"candidates" yaml:"candidates"`
	ContentFetched int `json:"content_fetched" yaml:"content_fetched"`
	Confirmed      int `json:"confirmed" yaml:"confirmed"`
}

// Merge adds other's counters to s.
func (s *ScanStats) Merge(other ScanStats) {
	s.Repositories += other.Repositories
	s.FilesListed += other.FilesListed
	s.Candidates += other.Candidates
	s.ContentFetched += other.ContentFetched
	s.Confirmed += other.Confirmed
}

// ScanReport is the outcome of scanning one user.
type ScanReport struct {
	// ID identifies the run in logs (UUID).
	ID string `json:"id" yaml:"id"`

	// User is the scanned account.
	User string `json:"user" yaml:"user"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	Result   ScanResult    `json:"result" yaml:"result"`
	Failures []RepoFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
	Stats    ScanStats     `json:"stats" yaml:"stats"`
}

// Duration returns how long the scan took.
func (r *ScanReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
