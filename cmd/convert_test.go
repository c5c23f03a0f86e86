package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ngshift.dev/pkg/ngshift/internal/domain"
	m "ngshift.dev/pkg/ngshift/internal/model"
)

func TestConvertCmd_PassesArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, got domain.ConvertArgs)
	}{
		{
			name: "defaults",
			args: []string{"FooTest.java"},
			check: func(t *testing.T, got domain.ConvertArgs) {
				assert.Equal(t, []m.Path{"FooTest.java"}, got.Paths)
				assert.Equal(t, m.DefaultProfile(), got.Profile)
				assert.False(t, got.Write)
				assert.False(t, got.ShowPlan)
				assert.True(t, got.ShowDiff)
				assert.Equal(t, uint(defaultParallel), got.Parallel)
				assert.False(t, got.Strict)
			},
		},
		{
			name: "all flags",
			args: []string{"./src/...", "BarTest.java", "--write", "--plan", "--no-diff", "--parallel", "2", "--strict"},
			check: func(t *testing.T, got domain.ConvertArgs) {
				assert.Equal(t, []m.Path{"./src/...", "BarTest.java"}, got.Paths)
				assert.True(t, got.Write)
				assert.True(t, got.ShowPlan)
				assert.False(t, got.ShowDiff)
				assert.Equal(t, uint(2), got.Parallel)
				assert.True(t, got.Strict)
			},
		},
		{
			name: "negative parallelism means unlimited",
			args: []string{"FooTest.java", "-p", "-1"},
			check: func(t *testing.T, got domain.ConvertArgs) {
				assert.Equal(t, uint(0), got.Parallel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := withMockWorkflow(t)

			var got domain.ConvertArgs

			mockWorkflow.EXPECT().Convert(mock.Anything, mock.Anything).
				RunAndReturn(func(_ context.Context, args domain.ConvertArgs) error {
					got = args
					return nil
				}).Once()

			_, err := executeSubcommand(t, newConvertCmd(), append([]string{"convert"}, tt.args...)...)
			require.NoError(t, err)

			tt.check(t, got)
		})
	}
}

func TestConvertCmd_CustomProfile(t *testing.T) {
	profilePath := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte("name: custom\nassertion_helper: org.testng.Assert\n"), 0o600))

	mockWorkflow := withMockWorkflow(t)
	mockWorkflow.EXPECT().Convert(mock.Anything, mock.MatchedBy(func(args domain.ConvertArgs) bool {
		return args.Profile.Name == "custom" && args.Profile.AssertionHelper == "org.testng.Assert"
	})).Return(nil).Once()

	_, err := executeSubcommand(t, newConvertCmd(), "convert", "FooTest.java", "--profile", profilePath)
	require.NoError(t, err)
}

func TestConvertCmd_Errors(t *testing.T) {
	t.Run("missing paths", func(t *testing.T) {
		withMockWorkflow(t)

		_, err := executeSubcommand(t, newConvertCmd(), "convert")
		require.Error(t, err)
	})

	t.Run("unreadable profile", func(t *testing.T) {
		withMockWorkflow(t)

		_, err := executeSubcommand(t, newConvertCmd(), "convert", "FooTest.java", "--profile", filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load profile")
	})

	t.Run("workflow failure", func(t *testing.T) {
		mockWorkflow := withMockWorkflow(t)
		mockWorkflow.EXPECT().Convert(mock.Anything, mock.Anything).Return(errors.New("1 of 1 file(s) failed")).Once()

		_, err := executeSubcommand(t, newConvertCmd(), "convert", "FooTest.java")
		require.EqualError(t, err, "1 of 1 file(s) failed")
	})
}

func TestParallelism(t *testing.T) {
	assert.Equal(t, uint(0), parallelism(-3))
	assert.Equal(t, uint(0), parallelism(0))
	assert.Equal(t, uint(8), parallelism(8))
}
