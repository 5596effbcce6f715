package classifier

import (
	"encoding/json"
	"path"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

// ContentClassifier confirms translation structure in file content.
// The check is chosen by the lower-cased extension of the file name.
type ContentClassifier struct {
	gettext        map[string]struct{}
	jsonExts       map[string]struct{}
	yamlExts       map[string]struct{}
	keyLengths     map[int]struct{}
	binaryCatalogs bool
}

// NewContentClassifier builds a classifier from rules.
func NewContentClassifier(rules ContentRules) *ContentClassifier {
	c := &ContentClassifier{
		gettext:        toSet(rules.GettextExtensions, strings.ToLower),
		jsonExts:       toSet(rules.JSONExtensions, strings.ToLower),
		yamlExts:       toSet(rules.YAMLExtensions, strings.ToLower),
		keyLengths:     make(map[int]struct{}, len(rules.KeyLengths)),
		binaryCatalogs: rules.BinaryCatalogs,
	}
	for _, n := range rules.KeyLengths {
		c.keyLengths[n] = struct{}{}
	}
	return c
}

// DefaultContentClassifier returns a classifier using DefaultContentRules.
func DefaultContentClassifier() *ContentClassifier {
	return NewContentClassifier(DefaultContentRules())
}

// Confirm reports whether content confirms filename as a translation file.
func (c *ContentClassifier) Confirm(content, filename string) bool {
	return c.Classify(content, filename).IsConfirmed()
}

// Classify inspects text content of filename.
func (c *ContentClassifier) Classify(content, filename string) domain.Verdict {
	return c.ClassifyFile(domain.FileContent{Path: filename, Text: content})
}

// ClassifyFile inspects fetched file content. It never panics; malformed
// input yields Inconclusive.
func (c *ContentClassifier) ClassifyFile(file domain.FileContent) (verdict domain.Verdict) {
	defer func() {
		if recover() != nil {
			verdict = domain.Inconclusive
		}
	}()

	ext := Extension(file.Path)

	if _, ok := c.gettext[ext]; ok {
		return classifyGettext(file.Text)
	}
	if _, ok := c.jsonExts[ext]; ok {
		var data any
		if err := json.Unmarshal([]byte(file.Text), &data); err != nil {
			return domain.Inconclusive
		}
		return c.classifyDocument(data)
	}
	if _, ok := c.yamlExts[ext]; ok {
		var data any
		if err := yaml.Unmarshal([]byte(file.Text), &data); err != nil {
			return domain.Inconclusive
		}
		return c.classifyDocument(data)
	}

	if c.binaryCatalogs {
		switch ext {
		case ".mo":
			return classifyMO(file.Bytes())
		case ".xliff", ".xlf":
			return classifyXLIFF(file.Text)
		}
	}

	return domain.Inconclusive
}

// Extension returns the lower-cased extension of the last path segment,
// including the dot.
func Extension(filename string) string {
	return strings.ToLower(path.Ext(path.Base(filename)))
}

func classifyGettext(content string) domain.Verdict {
	if strings.Contains(content, "msgid") && strings.Contains(content, "msgstr") {
		return domain.Confirmed
	}
	return domain.NotConfirmed
}

// classifyDocument checks a parsed JSON or YAML document. Only a top-level
// mapping can confirm: a string key shaped like a language code, or any
// non-empty string value.
func (c *ContentClassifier) classifyDocument(data any) domain.Verdict {
	switch m := data.(type) {
	case map[string]any:
		for k, v := range m {
			if c.languageKey(k) || nonEmptyString(v) {
				return domain.Confirmed
			}
		}
		return domain.NotConfirmed
	case map[any]any:
		// Only string keys can look like language codes.
		for k, v := range m {
			if key, ok := k.(string); ok && c.languageKey(key) {
				return domain.Confirmed
			}
			if nonEmptyString(v) {
				return domain.Confirmed
			}
		}
		return domain.NotConfirmed
	default:
		return domain.NotConfirmed
	}
}

func (c *ContentClassifier) languageKey(key string) bool {
	_, ok := c.keyLengths[utf8.RuneCountInString(key)]
	return ok
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}
