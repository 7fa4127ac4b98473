package contract

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gitpulse/gitpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validRawInput returns a minimal input that passes every validation step.
// Individual tests overwrite the fields they exercise.
func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		RepoPathStr:     ".",
		Limit:           10,
		Precision:       1,
		Output:          "text",
		Color:           "yes",
		AtomicThreshold: 50,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
		setupMock   func(*MockGitClient, string) // Pass the expected working directory
	}{
		{
			name:        "valid minimal config",
			mutate:      func(_ *ConfigRawInput) {},
			expectError: false,
			setupMock: func(mock *MockGitClient, workDir string) {
				ctx := context.Background()
				mock.On("GetRepoRoot", ctx, workDir).Return("/mock/repo/root", nil)
			},
		},
		{
			name: "invalid limit (zero)",
			mutate: func(in *ConfigRawInput) {
				in.Limit = 0
			},
			expectError: true,
			setupMock:   nil, // No mock setup needed since validation fails early
		},
		{
			name: "invalid limit (negative)",
			mutate: func(in *ConfigRawInput) {
				in.Limit = -1
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid limit (too large)",
			mutate: func(in *ConfigRawInput) {
				in.Limit = MaxResultLimit + 1
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid precision (zero)",
			mutate: func(in *ConfigRawInput) {
				in.Precision = 0
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid precision (too high)",
			mutate: func(in *ConfigRawInput) {
				in.Precision = 3
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid output format",
			mutate: func(in *ConfigRawInput) {
				in.Output = "invalid_format"
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "uppercase output format is accepted",
			mutate: func(in *ConfigRawInput) {
				in.Output = "JSON"
			},
			expectError: false,
			setupMock: func(mock *MockGitClient, workDir string) {
				ctx := context.Background()
				mock.On("GetRepoRoot", ctx, workDir).Return("/mock/repo/root", nil)
			},
		},
		{
			name: "invalid color value",
			mutate: func(in *ConfigRawInput) {
				in.Color = "perhaps"
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid atomic threshold",
			mutate: func(in *ConfigRawInput) {
				in.AtomicThreshold = 0
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid start date",
			mutate: func(in *ConfigRawInput) {
				in.Start = "not-a-date"
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid end date",
			mutate: func(in *ConfigRawInput) {
				in.End = "soon"
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "start after end",
			mutate: func(in *ConfigRawInput) {
				in.Start = "2024-06-30"
				in.End = "2024-01-01"
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "valid date window",
			mutate: func(in *ConfigRawInput) {
				in.Start = "2024-01-01"
				in.End = "2024-06-30"
			},
			expectError: false,
			setupMock: func(mock *MockGitClient, workDir string) {
				ctx := context.Background()
				mock.On("GetRepoRoot", ctx, workDir).Return("/mock/repo/root", nil)
			},
		},
		{
			name: "relative start bound",
			mutate: func(in *ConfigRawInput) {
				in.Start = "2 weeks ago"
			},
			expectError: false,
			setupMock: func(mock *MockGitClient, workDir string) {
				ctx := context.Background()
				mock.On("GetRepoRoot", ctx, workDir).Return("/mock/repo/root", nil)
			},
		},
		{
			name: "invalid alias with empty canonical name",
			mutate: func(in *ConfigRawInput) {
				in.Aliases = map[string]string{"sam": "   "}
			},
			expectError: true,
			setupMock:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockGitClient)

			// Dynamically determine the expected working directory
			workDir, err := filepath.Abs(".")
			require.NoError(t, err)

			if tt.setupMock != nil {
				tt.setupMock(mockClient, workDir)
			}

			input := validRawInput()
			tt.mutate(input)

			cfg := &Config{}
			ctx := context.Background()
			err = ProcessAndValidate(ctx, cfg, mockClient, input)

			if tt.expectError {
				assert.Error(t, err, "ProcessAndValidate should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "ProcessAndValidate should not return an error for %s", tt.name)
				// Basic validation that config was populated
				assert.Equal(t, input.Limit, cfg.ResultLimit)
				assert.Equal(t, "/mock/repo/root", cfg.RepoPath)
			}

			if tt.setupMock != nil {
				mockClient.AssertExpectations(t)
			}
		})
	}
}

// TestProcessAndValidateTimeWindow pins the exact instants produced by the
// date flags. Plain end dates must cover the whole day.
func TestProcessAndValidateTimeWindow(t *testing.T) {
	mockClient := new(MockGitClient)
	workDir, err := filepath.Abs(".")
	require.NoError(t, err)
	mockClient.On("GetRepoRoot", context.Background(), workDir).Return("/mock/repo/root", nil)

	input := validRawInput()
	input.Start = "2024-01-01"
	input.End = "2024-06-30"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))

	wantStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.June, 30, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	assert.True(t, wantStart.Equal(cfg.StartTime), "expected %s, got %s", wantStart, cfg.StartTime)
	assert.True(t, wantEnd.Equal(cfg.EndTime), "expected %s, got %s", wantEnd, cfg.EndTime)
}

// TestProcessAndValidateDefaults verifies the zero-flag experience: full
// history, stock excludes, and no alias table.
func TestProcessAndValidateDefaults(t *testing.T) {
	mockClient := new(MockGitClient)
	workDir, err := filepath.Abs(".")
	require.NoError(t, err)
	mockClient.On("GetRepoRoot", context.Background(), workDir).Return("/mock/repo/root", nil)

	input := validRawInput()
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))

	assert.True(t, cfg.StartTime.IsZero(), "no start flag should mean full history")
	assert.True(t, cfg.EndTime.IsZero(), "no end flag should mean full history")
	assert.Contains(t, cfg.Excludes, "go.sum")
	assert.Contains(t, cfg.Excludes, "node_modules/")
	assert.Nil(t, cfg.Aliases)
	assert.Nil(t, cfg.FixKeywords, "empty keyword sets stay nil so stock sets apply")
}

// TestProcessAndValidateExcludes verifies user patterns extend, not replace,
// the stock exclude list.
func TestProcessAndValidateExcludes(t *testing.T) {
	mockClient := new(MockGitClient)
	workDir, err := filepath.Abs(".")
	require.NoError(t, err)
	mockClient.On("GetRepoRoot", context.Background(), workDir).Return("/mock/repo/root", nil)

	input := validRawInput()
	input.Exclude = "dist/, *.gen.go, ,third_party/"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))

	assert.Contains(t, cfg.Excludes, "go.sum")
	assert.Contains(t, cfg.Excludes, "dist/")
	assert.Contains(t, cfg.Excludes, "*.gen.go")
	assert.Contains(t, cfg.Excludes, "third_party/")
	assert.NotContains(t, cfg.Excludes, "", "blank entries must be dropped")
}

// TestProcessAndValidateClassifierInputs covers alias normalization and
// keyword cleaning from the config file.
func TestProcessAndValidateClassifierInputs(t *testing.T) {
	mockClient := new(MockGitClient)
	workDir, err := filepath.Abs(".")
	require.NoError(t, err)
	mockClient.On("GetRepoRoot", context.Background(), workDir).Return("/mock/repo/root", nil)

	input := validRawInput()
	input.AtomicThreshold = 25
	input.Aliases = map[string]string{" Sam H ": " Samuel Huang "}
	input.FixKeywords = []string{" hotfix ", "", "patch"}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))

	assert.Equal(t, 25, cfg.AtomicThreshold)
	assert.Equal(t, map[string]string{"Sam H": "Samuel Huang"}, cfg.Aliases)
	assert.Equal(t, []string{"hotfix", "patch"}, cfg.FixKeywords)
	assert.Nil(t, cfg.RefactorKeywords)
}

// TestProcessAndValidateFileArgument verifies a file path resolves through
// its parent directory.
func TestProcessAndValidateFileArgument(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(filePath, []byte("package main\n"), 0o644))

	resolvedDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	mockClient := new(MockGitClient)
	mockClient.On("GetRepoRoot", context.Background(), filepath.Dir(filepath.Join(resolvedDir, "main.go"))).
		Return(resolvedDir, nil)

	input := validRawInput()
	input.RepoPathStr = filepath.Join(resolvedDir, "main.go")

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))
	assert.Equal(t, resolvedDir, cfg.RepoPath)
	mockClient.AssertExpectations(t)
}

func TestProcessAndValidateHosted(t *testing.T) {
	now := time.Date(2025, time.June, 20, 18, 0, 0, 0, time.UTC)

	t.Run("valid slug and lookback", func(t *testing.T) {
		input := validRawInput()
		input.RepoPathStr = "golang/go"
		input.DaysBack = 30
		input.Branch = "  main  "

		cfg := &Config{}
		require.NoError(t, ProcessAndValidateHosted(cfg, input, now))

		assert.Equal(t, "golang", cfg.Owner)
		assert.Equal(t, "go", cfg.Repo)
		assert.Equal(t, "main", cfg.Branch)
		assert.Equal(t, 30, cfg.DaysBack)
		assert.True(t, now.AddDate(0, 0, -30).Equal(cfg.StartTime))
		assert.True(t, cfg.EndTime.IsZero(), "hosted runs have no upper bound")
	})

	t.Run("invalid slugs", func(t *testing.T) {
		for _, slug := range []string{"golang", "a/b/c", "/go", "golang/", ""} {
			input := validRawInput()
			input.RepoPathStr = slug
			input.DaysBack = 30

			cfg := &Config{}
			err := ProcessAndValidateHosted(cfg, input, now)
			assert.Error(t, err, "slug %q should be rejected", slug)
			assert.Contains(t, err.Error(), "owner/name")
		}
	})

	t.Run("invalid days-back", func(t *testing.T) {
		for _, daysBack := range []int{0, -5, MaxDaysBack + 1} {
			input := validRawInput()
			input.RepoPathStr = "golang/go"
			input.DaysBack = daysBack

			cfg := &Config{}
			err := ProcessAndValidateHosted(cfg, input, now)
			assert.Error(t, err, "days-back %d should be rejected", daysBack)
		}
	})

	t.Run("shared validation still applies", func(t *testing.T) {
		input := validRawInput()
		input.RepoPathStr = "golang/go"
		input.DaysBack = 30
		input.Output = "xml"

		cfg := &Config{}
		assert.Error(t, ProcessAndValidateHosted(cfg, input, now))
	})
}
