package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mappings.yaml")
	content := []byte("mappings:\n  \"acme coworking\": \"Business Services\"\n  \"netflix\": \"Subscriptions\"\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	s := NewCategoryStore(path)

	category, found := s.Lookup("NETFLIX.COM LONDON")
	assert.True(t, found)
	assert.Equal(t, "Subscriptions", category)

	category, found = s.Lookup("CARD PAYMENT ACME COWORKING LTD")
	assert.True(t, found)
	assert.Equal(t, "Business Services", category)

	_, found = s.Lookup("UNRELATED MERCHANT")
	assert.False(t, found)
}

func TestMissingFileStartsEmpty(t *testing.T) {
	s := NewCategoryStore(filepath.Join(t.TempDir(), "absent.yaml"))
	_, found := s.Lookup("ANYTHING")
	assert.False(t, found)
}

func TestSetAndSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")

	s := NewCategoryStore(path)
	s.Set("Corner Shop", "Groceries")
	require.NoError(t, s.Save())

	reloaded := NewCategoryStore(path)
	category, found := reloaded.Lookup("CORNER SHOP EXPRESS")
	assert.True(t, found)
	assert.Equal(t, "Groceries", category)
}

func TestSaveWithoutChangesIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	s := NewCategoryStore(path)
	require.NoError(t, s.Save())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
