package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/i18nscout/internal/core/domain"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	assert.Equal(t, Settings{}, store.Settings())
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	path, err := DefaultPath()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".i18nscout", "config.toml"), path)
}

func TestNewConfigStore_DoesNotCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	_, err := NewConfigStore(path)

	require.NoError(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"token", " ghp_abc ", "ghp_abc"},
		{"base_url", "https://ghe.example.com/api/v3", "https://ghe.example.com/api/v3"},
		{"branch", "develop", "develop"},
		{"per_page", "50", "50"},
		{"workers", "8", "8"},
		{"requests_per_second", "1.5", "1.5"},
		{"binary_catalogs", "true", "true"},
		{"dir_keywords", "locales, i18n,,l10n", "locales,i18n,l10n"},
		{"exclude", "**/node_modules/**", "**/node_modules/**"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			store := newStore(t)

			require.NoError(t, store.Set(tt.key, tt.value))

			got, ok := store.Get(tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigStore_SetInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "colour", "red"},
		{"non-numeric int", "per_page", "many"},
		{"negative int", "workers", "-1"},
		{"bad float", "requests_per_second", "fast"},
		{"bad bool", "binary_catalogs", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)

			err := store.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, Settings{}, store.Settings())
		})
	}
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := newStore(t)

	_, ok := store.Get("nonexistent")

	assert.False(t, ok)
}

func TestConfigStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	want := Settings{
		Token:             "ghp_abc",
		BaseURL:           "https://ghe.example.com/api/v3",
		PerPage:           30,
		Workers:           2,
		RequestsPerSecond: 0.5,
		Branch:            "main",
		DirKeywords:       []string{"locales"},
		Extensions:        []string{".po", ".arb"},
		FilenamePatterns:  []string{"messages"},
		Exclude:           []string{"**/vendor/**"},
		BinaryCatalogs:    true,
	}

	store, err := NewConfigStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Replace(want))

	reloaded, err := NewConfigStore(path)
	require.NoError(t, err)
	assert.Equal(t, want, reloaded.Settings())
}

func TestConfigStore_ReadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `token = "ghp_file"
per_page = 25
exclude = ["**/node_modules/**"]
binary_catalogs = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	s := store.Settings()
	assert.Equal(t, "ghp_file", s.Token)
	assert.Equal(t, 25, s.PerPage)
	assert.Equal(t, []string{"**/node_modules/**"}, s.Exclude)
	assert.True(t, s.BinaryCatalogs)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("token", "secret"))

	info, err := os.Stat(store.Path())

	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	assert.Equal(t, Settings{}, store.Settings())
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is [not valid"), 0600))

	_, err := NewConfigStore(path)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigStore_SettingsIsACopy(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("extensions", ".po,.arb"))

	s := store.Settings()
	s.Extensions[0] = ".changed"

	got, _ := store.Get("extensions")
	assert.Equal(t, ".po,.arb", got)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("workers", "4")
			_, _ = store.Get("workers")
			_ = store.Settings()
		}()
	}
	wg.Wait()

	got, _ := store.Get("workers")
	assert.Equal(t, "4", got)
}

func TestKeys(t *testing.T) {
	keys := Keys()

	assert.Contains(t, keys, "token")
	assert.Contains(t, keys, "binary_catalogs")
	assert.IsIncreasing(t, keys)
}
