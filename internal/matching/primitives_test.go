package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNaicsAlignment(t *testing.T) {
	tests := []struct {
		name      string
		oppCode   string
		codes     []string
		wantScore float64
		wantExact bool
	}{
		{"exact match", "541511", []string{"541511"}, 100, true},
		{"exact among several", "541511", []string{"236220", "541511"}, 100, true},
		{"shared 4-digit family", "541511", []string{"541512"}, 70, false},
		{"no overlap", "541511", []string{"236220"}, 0, false},
		{"no opportunity code is neutral", "", []string{"541511"}, 50, false},
		{"empty supplier codes never neutral", "", nil, 0, false},
		{"empty supplier codes with opp code", "541511", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NaicsAlignment(tt.oppCode, tt.codes)
			require.Equal(t, tt.wantScore, got.Score)
			require.Equal(t, tt.wantExact, got.ExactMatch)
		})
	}
}

func TestSetAsideCompliance(t *testing.T) {
	got := SetAsideCompliance("SDVOSB", []string{"SDVOSB Certified 2024"})
	require.True(t, got.Matched)
	require.Equal(t, 100.0, got.Score)

	// Case-insensitive substring
	got = SetAsideCompliance("WOSB", []string{"certified woman-owned small business"})
	require.True(t, got.Matched)

	got = SetAsideCompliance("HUBZone", []string{"ISO 9001"})
	require.False(t, got.Matched)
	require.Equal(t, 0.0, got.Score)

	// Open competition scores 80, never a bonus.
	got = SetAsideCompliance("", nil)
	require.False(t, got.Matched)
	require.Equal(t, 80.0, got.Score)
}

func TestRatingScore(t *testing.T) {
	require.Equal(t, 0.0, RatingScore("0"))
	require.Equal(t, 100.0, RatingScore("5"))
	require.Equal(t, 50.0, RatingScore("2.5"))

	// Defensive parsing
	require.Equal(t, 0.0, RatingScore(""))
	require.Equal(t, 0.0, RatingScore("n/a"))
	require.Equal(t, 0.0, RatingScore("-3"))
	require.Equal(t, 100.0, RatingScore("7.2")) // clamped to 5

	// Monotonic non-decreasing
	prev := -1.0
	for _, r := range []string{"0", "0.5", "1", "2.5", "3.9", "4", "4.5", "5"} {
		score := RatingScore(r)
		require.GreaterOrEqual(t, score, prev, "rating %s", r)
		prev = score
	}
}

func TestCapabilityOverlap(t *testing.T) {
	desc := "Cloud migration and cybersecurity services for agency data centers"

	// Both capabilities appear in the description.
	require.Equal(t, 100.0, CapabilityOverlap(desc, []string{"cloud migration", "cybersecurity"}))

	// One of two matches.
	require.Equal(t, 50.0, CapabilityOverlap(desc, []string{"cybersecurity", "janitorial"}))

	// Neutral when information is missing on either side.
	require.Equal(t, 50.0, CapabilityOverlap("", []string{"cybersecurity"}))
	require.Equal(t, 50.0, CapabilityOverlap(desc, nil))
}

func TestGSABonus(t *testing.T) {
	require.Equal(t, 100.0, GSABonus(true))
	require.Equal(t, 70.0, GSABonus(false))
}
