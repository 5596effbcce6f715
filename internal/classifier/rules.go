package classifier

// DefaultValuesPattern matches Android resource folders such as values-fr or
// values-en-rus. Segments are lower-cased before matching.
const DefaultValuesPattern = `^values-[a-z]{2}(-r[a-z]{2})?$`

// PathRules configures PathClassifier.
type PathRules struct {
	// DirKeywords are directory names that mark translation folders.
	DirKeywords []string `toml:"dir_keywords"`

	// ValuesPattern is a regular expression matched against every segment.
	// Empty disables the rule.
	ValuesPattern string `toml:"values_pattern"`

	// Extensions are suffixes of catalog files, including the dot.
	Extensions []string `toml:"extensions"`

	// FilenamePatterns are fragments searched for in the final segment.
	FilenamePatterns []string `toml:"filename_patterns"`

	// Exclude holds doublestar globs. Matching paths are never candidates.
	Exclude []string `toml:"exclude"`
}

// DefaultPathRules returns the built-in path rules.
func DefaultPathRules() PathRules {
	return PathRules{
		DirKeywords:      []string{"locales", "i18n", "lang", "translations"},
		ValuesPattern:    DefaultValuesPattern,
		Extensions:       []string{".po", ".pot", ".mo", ".xliff", ".arb"},
		FilenamePatterns: []string{"messages", "translation", "locale", "strings"},
	}
}

// ContentRules configures ContentClassifier.
type ContentRules struct {
	// GettextExtensions are checked for msgid/msgstr tokens.
	GettextExtensions []string `toml:"gettext_extensions"`

	// JSONExtensions are parsed as JSON.
	JSONExtensions []string `toml:"json_extensions"`

	// YAMLExtensions are parsed as YAML.
	YAMLExtensions []string `toml:"yaml_extensions"`

	// KeyLengths are top-level key lengths (in characters) that look like
	// language codes: 2 for "en", 5 for "en-US".
	KeyLengths []int `toml:"key_lengths"`

	// BinaryCatalogs enables structural checks for compiled gettext (.mo)
	// and XLIFF files. Without it those formats stay inconclusive.
	BinaryCatalogs bool `toml:"binary_catalogs"`
}

// DefaultContentRules returns the built-in content rules.
func DefaultContentRules() ContentRules {
	return ContentRules{
		GettextExtensions: []string{".po", ".pot"},
		JSONExtensions:    []string{".json", ".arb"},
		YAMLExtensions:    []string{".yaml", ".yml"},
		KeyLengths:        []int{2, 5},
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func toSet(values []string, normalize func(string) string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[normalize(v)] = struct{}{}
	}
	return set
}
