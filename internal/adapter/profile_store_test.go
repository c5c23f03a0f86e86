package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

func TestProfileStore_SaveAndLoad(t *testing.T) {
	store := NewProfileStore()
	path := m.Path(filepath.Join(t.TempDir(), "profile.yaml"))

	profile := m.DefaultProfile()
	profile.Name = "custom"
	profile.AssertionHelper = "org.testng.Assert"
	profile.AttributeRenames = map[string]string{"timeout": "timeOut"}

	require.NoError(t, store.SaveProfile(path, profile))

	info, err := os.Stat(string(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, profile, loaded)
}

func TestProfileStore_LoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	writeTestFile(t, path, "name: partial\nfail_helper: org.example.Fail\n")

	loaded, err := NewProfileStore().LoadProfile(m.Path(path))
	require.NoError(t, err)

	want := m.DefaultProfile()
	want.Name = "partial"
	want.FailHelper = "org.example.Fail"
	assert.Equal(t, want, loaded)
}

func TestProfileStore_LoadEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	writeTestFile(t, path, "")

	loaded, err := NewProfileStore().LoadProfile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, m.DefaultProfile(), loaded)
}

func TestProfileStore_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "assertion_helpr: x\n", "field assertion_helpr not found"},
		{"malformed yaml", "name: [unclosed\n", "decode profile"},
		{"missing target name", "test_annotation: \"\"\n", "test_annotation is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			writeTestFile(t, path, tt.content)

			_, err := NewProfileStore().LoadProfile(m.Path(path))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewProfileStore().LoadProfile(m.Path(filepath.Join(dir, "absent.yaml")))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestProfileStore_Encode(t *testing.T) {
	data, err := NewProfileStore().EncodeProfile(m.DefaultProfile())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "name: junit-testng\n")
	assert.Contains(t, text, "before_annotation: org.testng.annotations.BeforeMethod\n")
	assert.Contains(t, text, "attribute_renames:\n  expected: expectedExceptions\n  timeout: timeOut\n")
	assert.Contains(t, text, "legacy_packages:\n  - junit.framework\n  - org.junit\n")
}
