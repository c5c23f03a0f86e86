package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

func chdirTemp(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	return tempDir
}

func TestInitCmd_WritesConfigFile(t *testing.T) {
	tempDir := chdirTemp(t)

	_, err := executeSubcommand(t, newInitCmd(), "init")
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(tempDir, configFileName))
	require.NoError(t, err)

	var config map[string]any
	require.NoError(t, yaml.Unmarshal(contents, &config))
	assert.Equal(t, currentConfigVersion, config[configVersionKey])
	assert.Contains(t, config, "convert")

	_, err = os.Stat(filepath.Join(tempDir, defaultProfileFileName))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInitCmd_WithProfile(t *testing.T) {
	tempDir := chdirTemp(t)

	_, err := executeSubcommand(t, newInitCmd(), "init", "--with-profile")
	require.NoError(t, err)

	profile, err := profileStore.LoadProfile(m.Path(filepath.Join(tempDir, defaultProfileFileName)))
	require.NoError(t, err)
	assert.Equal(t, m.DefaultProfile(), profile)

	contents, err := os.ReadFile(filepath.Join(tempDir, configFileName))
	require.NoError(t, err)
	assert.Contains(t, string(contents), defaultProfileFileName)
}

func TestInitCmd_ErrorsWhenFileExists(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		args     []string
	}{
		{"config", configFileName, []string{"init"}},
		{"profile", defaultProfileFileName, []string{"init", "--with-profile"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := chdirTemp(t)
			require.NoError(t, os.WriteFile(filepath.Join(tempDir, tt.existing), []byte("existing: true\n"), 0o644))

			_, err := executeSubcommand(t, newInitCmd(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, strings.ToLower(err.Error()), "already exists")
		})
	}
}
