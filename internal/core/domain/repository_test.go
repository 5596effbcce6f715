package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepository_Branch(t *testing.T) {
	t.Run("uses default branch when set", func(t *testing.T) {
		r := Repository{Name: "app", DefaultBranch: "develop"}
		assert.Equal(t, "develop", r.Branch())
	})

	t.Run("falls back to main", func(t *testing.T) {
		r := Repository{Name: "app"}
		assert.Equal(t, "main", r.Branch())
	})
}

func TestRepository_FullName(t *testing.T) {
	assert.Equal(t, "octo/app", Repository{Owner: "octo", Name: "app"}.FullName())
	assert.Equal(t, "app", Repository{Name: "app"}.FullName())
}

func TestFileEntry_IsBlob(t *testing.T) {
	assert.True(t, FileEntry{Path: "a.json", Kind: EntryBlob}.IsBlob())
	assert.False(t, FileEntry{Path: "locales", Kind: EntryTree}.IsBlob())
	assert.False(t, FileEntry{Path: "vendor/lib", Kind: EntryCommit}.IsBlob())
}

func TestFileContent_Bytes(t *testing.T) {
	assert.Equal(t, []byte{0xde, 0x12}, FileContent{Text: "�", Raw: []byte{0xde, 0x12}}.Bytes())
	assert.Equal(t, []byte("msgid"), FileContent{Text: "msgid"}.Bytes())
}
