package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForMonthOrLiteracy(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name     string
		month    int
		literacy int
		want     int
	}{
		{"fresh start", 1, 0, 1},
		{"month five stays basic", 5, 10, 1},
		{"month six unlocks level two", 6, 0, 2},
		{"literacy twenty unlocks level two early", 1, 20, 2},
		{"month twelve unlocks level three", 12, 0, 3},
		{"literacy forty five unlocks level three early", 3, 45, 3},
		{"month twenty four unlocks level four", 24, 0, 4},
		{"month thirty six unlocks level five", 36, 0, 5},
		{"literacy ninety unlocks level five early", 2, 90, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.LevelFor(tt.month, tt.literacy))
		})
	}
}

func TestLevelTitle(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "The Basics", cfg.LevelTitle(1))
	assert.Equal(t, "Mastery", cfg.LevelTitle(5))
	assert.Equal(t, "", cfg.LevelTitle(9))
}

func TestFilterForWidensWithLevel(t *testing.T) {
	cfg := Default()

	f1 := cfg.FilterFor(1)
	assert.Equal(t, 2, f1.MaxDifficulty)
	assert.NotContains(t, f1.Categories, "INVESTMENT")

	f3 := cfg.FilterFor(3)
	assert.Contains(t, f3.Categories, "INVESTMENT")
	assert.Contains(t, f3.Categories, "NEWS")

	f5 := cfg.FilterFor(5)
	assert.Nil(t, f5.Categories)
	assert.Equal(t, 5, f5.MaxDifficulty)

	// Out-of-range levels get the widest filter.
	assert.Equal(t, f5, cfg.FilterFor(42))
}

func TestIPOByName(t *testing.T) {
	cfg := Default()

	month, listing, ok := cfg.IPOByName("Zomato")
	assert.True(t, ok)
	assert.Equal(t, 6, month)
	assert.Equal(t, 76, listing.PriceBand)

	_, _, ok = cfg.IPOByName("Hype Corp")
	assert.False(t, ok)
}

func TestFundNamesStableOrder(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"MIDCAP", "NIFTY50", "SMALLCAP"}, cfg.FundNames())
}

func TestSectorGBMParameters(t *testing.T) {
	cfg := Default()

	// The synthetic market model: tech grows fast and swings hard,
	// gold is stable, real estate crawls upward.
	tests := []struct {
		sector string
		want   SectorParams
	}{
		{"tech", SectorParams{Start: 500, Mu: 0.02, Sigma: 0.15}},
		{"gold", SectorParams{Start: 1800, Mu: 0.005, Sigma: 0.05}},
		{"real_estate", SectorParams{Start: 300, Mu: 0.01, Sigma: 0.02}},
	}
	for _, tt := range tests {
		t.Run(tt.sector, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.SectorParams[tt.sector])
		})
	}
	assert.Len(t, cfg.SectorParams, len(cfg.Sectors))
}

func TestValidSector(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.ValidSector("gold"))
	assert.True(t, cfg.ValidSector("real_estate"))
	assert.False(t, cfg.ValidSector("crypto"))
}
