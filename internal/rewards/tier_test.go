package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor_Boundaries(t *testing.T) {
	cases := []struct {
		points int
		want   string
	}{
		{0, "Bronze"},
		{399, "Bronze"},
		{400, "Silver"},
		{899, "Silver"},
		{900, "Gold"},
		{1599, "Gold"},
		{1600, "Platinum"},
		{9000, "Platinum"},
	}

	for _, tc := range cases {
		got := TierFor(tc.points)
		assert.Equal(t, tc.want, got.Tier.Name, "points=%d", tc.points)
	}
}

func TestTierFor_Progress(t *testing.T) {
	status := TierFor(650)
	require.NotNil(t, status.NextTier)
	assert.Equal(t, "Gold", status.NextTier.Name)
	assert.InDelta(t, 50.0, status.ProgressPct, 0.001)
}

func TestTierFor_TopTier(t *testing.T) {
	status := TierFor(2000)
	assert.Nil(t, status.NextTier)
	assert.Equal(t, 100.0, status.ProgressPct)
}

func TestTierFor_NegativeClampsToBronze(t *testing.T) {
	status := TierFor(-10)
	assert.Equal(t, "Bronze", status.Tier.Name)
	assert.Equal(t, 0.0, status.ProgressPct)
}
