package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

const (
	// DirName is the settings directory under the user's home.
	DirName = ".i18nscout"

	// FileName is the settings file name.
	FileName = "config.toml"
)

// Settings is the persisted configuration. Zero values mean "use the
// built-in default".
type Settings struct {
	Token             string   `toml:"token,omitempty"`
	BaseURL           string   `toml:"base_url,omitempty"`
	PerPage           int      `toml:"per_page,omitempty"`
	Workers           int      `toml:"workers,omitempty"`
	RequestsPerSecond float64  `toml:"requests_per_second,omitempty"`
	Branch            string   `toml:"branch,omitempty"`
	DirKeywords       []string `toml:"dir_keywords,omitempty"`
	Extensions        []string `toml:"extensions,omitempty"`
	FilenamePatterns  []string `toml:"filename_patterns,omitempty"`
	Exclude           []string `toml:"exclude,omitempty"`
	BinaryCatalogs    bool     `toml:"binary_catalogs,omitempty"`
}

// field binds a TOML key to its Settings member.
type field struct {
	get func(*Settings) string
	set func(*Settings, string) error
}

var fields = map[string]field{
	"token":             stringField(func(s *Settings) *string { return &s.Token }),
	"base_url":          stringField(func(s *Settings) *string { return &s.BaseURL }),
	"branch":            stringField(func(s *Settings) *string { return &s.Branch }),
	"per_page":          intField(func(s *Settings) *int { return &s.PerPage }),
	"workers":           intField(func(s *Settings) *int { return &s.Workers }),
	"dir_keywords":      listField(func(s *Settings) *[]string { return &s.DirKeywords }),
	"extensions":        listField(func(s *Settings) *[]string { return &s.Extensions }),
	"filename_patterns": listField(func(s *Settings) *[]string { return &s.FilenamePatterns }),
	"exclude":           listField(func(s *Settings) *[]string { return &s.Exclude }),
	"requests_per_second": {
		get: func(s *Settings) string { return strconv.FormatFloat(s.RequestsPerSecond, 'f', -1, 64) },
		set: func(s *Settings, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("%w: %q is not a non-negative number", domain.ErrInvalidInput, v)
			}
			s.RequestsPerSecond = f
			return nil
		},
	},
	"binary_catalogs": {
		get: func(s *Settings) string { return strconv.FormatBool(s.BinaryCatalogs) },
		set: func(s *Settings, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", domain.ErrInvalidInput, v)
			}
			s.BinaryCatalogs = b
			return nil
		},
	},
}

func stringField(ptr func(*Settings) *string) field {
	return field{
		get: func(s *Settings) string { return *ptr(s) },
		set: func(s *Settings, v string) error {
			*ptr(s) = strings.TrimSpace(v)
			return nil
		},
	}
}

func intField(ptr func(*Settings) *int) field {
	return field{
		get: func(s *Settings) string { return strconv.Itoa(*ptr(s)) },
		set: func(s *Settings, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n < 0 {
				return fmt.Errorf("%w: %q is not a non-negative integer", domain.ErrInvalidInput, v)
			}
			*ptr(s) = n
			return nil
		},
	}
}

func listField(ptr func(*Settings) *[]string) field {
	return field{
		get: func(s *Settings) string { return strings.Join(*ptr(s), ",") },
		set: func(s *Settings, v string) error {
			var items []string
			for _, item := range strings.Split(v, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			*ptr(s) = items
			return nil
		},
	}
}

// Keys returns the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ConfigStore reads and writes Settings as TOML.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// DefaultPath returns ~/.i18nscout/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, DirName, FileName), nil
}

// NewConfigStore opens the settings file at path, or the default path when
// empty. A missing file yields empty settings.
func NewConfigStore(path string) (*ConfigStore, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	s := &ConfigStore{filePath: path}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Settings returns a copy of the current settings.
func (s *ConfigStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.clone()
}

// Get returns the string form of a key.
func (s *ConfigStore) Get(key string) (string, bool) {
	f, ok := fields[key]
	if !ok {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return f.get(&s.settings), true
}

// Set parses value into key and persists immediately. List keys take
// comma-separated values.
func (s *ConfigStore) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings.clone()
	if err := f.set(&next, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.settings = next
	return s.save()
}

// Replace swaps in new settings and persists them.
func (s *ConfigStore) Replace(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings.clone()
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.settings = Settings{}
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var loaded Settings
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidInput, s.filePath, err)
	}
	s.settings = loaded
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

func (s Settings) clone() Settings {
	out := s
	out.DirKeywords = cloneStrings(s.DirKeywords)
	out.Extensions = cloneStrings(s.Extensions)
	out.FilenamePatterns = cloneStrings(s.FilenamePatterns)
	out.Exclude = cloneStrings(s.Exclude)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
