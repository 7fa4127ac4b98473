package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)

// TestParseRelativeTime covers various valid and invalid cases.
func TestParseRelativeTime(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		// Valid tests: Ensure units and casing are parsed correctly relative to fixedNow
		{
			name:        "valid plural months (mixed case)",
			input:       "3 MoNtHs AgO",
			expected:    fixedNow.AddDate(0, -3, 0),
			expectError: false,
		},
		{
			name:        "valid singular week (capitalized)",
			input:       "1 Week Ago",
			expected:    fixedNow.Add(time.Duration(-1) * 7 * 24 * time.Hour),
			expectError: false,
		},
		{
			name:        "valid 10 days (upper case)",
			input:       "10 DAYS AGO",
			expected:    fixedNow.Add(time.Duration(-10) * 24 * time.Hour),
			expectError: false,
		},
		{
			name:        "valid 2 years",
			input:       "2 years ago",
			expected:    fixedNow.AddDate(-2, 0, 0),
			expectError: false,
		},
		{
			name:        "valid 5 hours",
			input:       "5 hours ago",
			expected:    fixedNow.Add(time.Duration(-5) * time.Hour),
			expectError: false,
		},
		{
			name:        "valid 30 minutes with padding",
			input:       "  30 minutes ago  ",
			expected:    fixedNow.Add(time.Duration(-30) * time.Minute),
			expectError: false,
		},
		// Invalid tests: Ensure only supported formats/units are accepted
		{
			name:        "invalid missing ago",
			input:       "2 years",
			expectError: true,
		},
		{
			name:        "invalid bad unit (decades)",
			input:       "4 decades ago",
			expectError: true,
		},
		{
			name:        "invalid non-numeric value",
			input:       "one year ago",
			expectError: true,
		},
		{
			name:        "invalid empty string",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tResult, err := ParseRelativeTime(tt.input, fixedNow)

			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected.Round(time.Second), tResult.Round(time.Second), "Parsed time mismatch")
			}
		})
	}
}

// TestParseTimeBound covers the three accepted shapes of a window bound:
// full ISO8601 timestamps, plain dates, and relative expressions.
func TestParseTimeBound(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		endOfDay    bool
		expected    time.Time
		expectError bool
	}{
		{
			name:     "full ISO8601 timestamp",
			input:    "2025-03-10T14:30:00Z",
			expected: time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "full ISO8601 timestamp with offset",
			input:    "2025-03-10T14:30:00+02:00",
			expected: time.Date(2025, time.March, 10, 14, 30, 0, 0, time.FixedZone("", 2*60*60)),
		},
		{
			name:     "plain date as start bound",
			input:    "2025-03-10",
			endOfDay: false,
			expected: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "plain date as end bound snaps to end of day",
			input:    "2025-03-10",
			endOfDay: true,
			expected: time.Date(2025, time.March, 10, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC),
		},
		{
			name:     "relative expression",
			input:    "2 weeks ago",
			expected: fixedNow.Add(time.Duration(-2) * 7 * 24 * time.Hour),
		},
		{
			name:     "relative expression ignores endOfDay",
			input:    "1 day ago",
			endOfDay: true,
			expected: fixedNow.Add(time.Duration(-24) * time.Hour),
		},
		{
			name:        "unparseable input",
			input:       "next thursday",
			expectError: true,
		},
		{
			name:        "date with slashes",
			input:       "2025/03/10",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTimeBound(tt.input, fixedNow, tt.endOfDay)

			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.expected.Equal(result), "expected %s, got %s", tt.expected, result)
			}
		})
	}
}

// FuzzParseRelativeTime fuzzes the ParseRelativeTime function with random inputs.
func FuzzParseRelativeTime(f *testing.F) {
	// Add some seed inputs
	seeds := []string{
		"1 year ago",
		"2 months ago",
		"3 weeks ago",
		"4 days ago",
		"5 hours ago",
		"6 minutes ago",
		"10 years ago",
		"0 years ago", // edge case
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input string) {
		now := time.Now()
		_, err := ParseRelativeTime(input, now)
		// We don't assert on the result, just that it doesn't panic
		_ = err // ignore error, we're testing for crashes
	})
}

// FuzzParseTimeBound fuzzes both bound directions with random inputs.
func FuzzParseTimeBound(f *testing.F) {
	seeds := []string{
		"2025-01-01",
		"2025-01-01T00:00:00Z",
		"3 days ago",
		"",
		"not a date",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input string) {
		now := time.Now()
		_, _ = ParseTimeBound(input, now, false)
		_, _ = ParseTimeBound(input, now, true)
	})
}
