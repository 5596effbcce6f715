package domain

// DefaultBranch is used when the platform does not report a default branch.
const DefaultBranch = "main"

// Repository is a repository owned by the scanned user.
type Repository struct {
	// Name is the repository name without owner.
	Name string `json:"name"`

	// Owner is the login of the owning account.
	Owner string `json:"owner"`

	// DefaultBranch is the branch scanned when no override is given.
	DefaultBranch string `json:"default_branch"`

	// Fork is true when the repository is a fork.
	Fork bool `json:"fork,omitempty"`

	// Archived is true when the repository is read-only.
	Archived bool `json:"archived,omitempty"`
}

// FullName returns owner/name.
func (r Repository) FullName() string {
	if r.Owner == "" {
		return r.Name
	}
	return r.Owner + "/" + r.Name
}

// Branch returns the default branch, falling back to DefaultBranch.
func (r Repository) Branch() string {
	if r.DefaultBranch == "" {
		return DefaultBranch
	}
	return r.DefaultBranch
}

// EntryKind is the type of a tree entry.
type EntryKind string

const (
	// EntryBlob is a file.
	EntryBlob EntryKind = "blob"

	// EntryTree is a directory.
	EntryTree EntryKind = "tree"

	// EntryCommit is a submodule reference.
	EntryCommit EntryKind = "commit"
)

// FileEntry is one entry of a recursive repository tree.
type FileEntry struct {
	Path string
	Kind EntryKind
	Size int
	SHA  string
}

// IsBlob reports whether the entry is a file.
func (e FileEntry) IsBlob() bool {
	return e.Kind == EntryBlob
}

// FileContent is the decoded text of a file paired with its path.
// The path is kept because classification depends on the extension.
type FileContent struct {
	Path string
	Text string

	// Raw holds the decoded bytes before text conversion. Binary catalog
	// checks read it because lossy text conversion destroys magic numbers.
	Raw []byte
}

// Bytes returns Raw, or Text as bytes when Raw is not set.
func (c FileContent) Bytes() []byte {
	if c.Raw != nil {
		return c.Raw
	}
	return []byte(c.Text)
}
