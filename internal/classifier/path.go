package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// PathReason explains a PathClassifier decision.
type PathReason int

const (
	// ReasonNone means no rule matched.
	ReasonNone PathReason = iota

	// ReasonExcluded means an exclude glob rejected the path.
	ReasonExcluded

	// ReasonDirKeyword means a segment is a translation directory keyword.
	ReasonDirKeyword

	// ReasonValuesFolder means a segment is an Android values-xx folder.
	ReasonValuesFolder

	// ReasonExtension means the path ends with a catalog extension.
	ReasonExtension

	// ReasonFilename means the file name contains a translation fragment.
	ReasonFilename
)

// String returns the reason name used in logs.
func (r PathReason) String() string {
	switch r {
	case ReasonExcluded:
		return "excluded"
	case ReasonDirKeyword:
		return "dir-keyword"
	case ReasonValuesFolder:
		return "values-folder"
	case ReasonExtension:
		return "extension"
	case ReasonFilename:
		return "filename"
	default:
		return "none"
	}
}

// Accepted reports whether the reason makes the path a candidate.
func (r PathReason) Accepted() bool {
	return r >= ReasonDirKeyword
}

// PathClassifier decides whether a path looks like a translation artifact.
// It favours recall; ContentClassifier enforces precision.
type PathClassifier struct {
	dirKeywords map[string]struct{}
	values      *regexp.Regexp
	extensions  []string
	fragments   []string
	exclude     []string
}

// NewPathClassifier compiles rules into a classifier.
func NewPathClassifier(rules PathRules) (*PathClassifier, error) {
	c := &PathClassifier{
		dirKeywords: toSet(rules.DirKeywords, strings.ToLower),
		extensions:  lowerAll(rules.Extensions),
		fragments:   lowerAll(rules.FilenamePatterns),
		exclude:     cloneStrings(rules.Exclude),
	}

	if rules.ValuesPattern != "" {
		re, err := regexp.Compile(rules.ValuesPattern)
		if err != nil {
			return nil, fmt.Errorf("%w: values pattern: %w", domain.ErrInvalidInput, err)
		}
		c.values = re
	}

	for _, pattern := range c.exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: exclude pattern %q", domain.ErrInvalidInput, pattern)
		}
	}

	return c, nil
}

// DefaultPathClassifier returns a classifier using DefaultPathRules.
func DefaultPathClassifier() *PathClassifier {
	c, err := NewPathClassifier(DefaultPathRules())
	if err != nil {
		panic(err)
	}
	return c
}

// Match reports whether path is a translation candidate.
func (c *PathClassifier) Match(path string) bool {
	return c.Reason(path).Accepted()
}

// Reason returns the first rule that decided path.
func (c *PathClassifier) Reason(path string) PathReason {
	for _, pattern := range c.exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return ReasonExcluded
		}
	}

	lower := strings.ToLower(path)
	segments := strings.Split(lower, "/")

	for _, seg := range segments {
		if _, ok := c.dirKeywords[seg]; ok {
			return ReasonDirKeyword
		}
	}

	if c.values != nil {
		for _, seg := range segments {
			if c.values.MatchString(seg) {
				return ReasonValuesFolder
			}
		}
	}

	for _, ext := range c.extensions {
		if strings.HasSuffix(lower, ext) {
			return ReasonExtension
		}
	}

	name := segments[len(segments)-1]
	for _, fragment := range c.fragments {
		if strings.Contains(name, fragment) {
			return ReasonFilename
		}
	}

	return ReasonNone
}

// Filter returns the blob entries whose paths match, keeping their order.
func (c *PathClassifier) Filter(entries []domain.FileEntry) []domain.FileEntry {
	out := make([]domain.FileEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsBlob() && c.Match(e.Path) {
			out = append(out, e)
		}
	}
	return out
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
