package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDealers_Embedded(t *testing.T) {
	dealers, err := loadDealers("")
	require.NoError(t, err)
	assert.NotEmpty(t, dealers)
}

func TestLoadDealers_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dealers.json")
	fixture := `[{"id":"toyota-of-plano","name":"Toyota of Plano","coordinates":{"lat":33.0198,"lon":-96.6989}}]`
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	dealers, err := loadDealers(path)
	require.NoError(t, err)
	require.Len(t, dealers, 1)
	assert.Equal(t, "toyota-of-plano", dealers[0].ID)
}

func TestLoadDealers_Errors(t *testing.T) {
	_, err := loadDealers(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":""}]`), 0o600))
	_, err = loadDealers(path)
	require.Error(t, err)
}
