// Package config holds the game tuning tables. Default() returns the
// shipped balance; nothing here is read from the environment.
package config

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/arthneeti/arthneeti/internal/game"
)

// LevelThreshold unlocks a level when the month OR the literacy score
// crosses its minimum.
type LevelThreshold struct {
	Level       int
	MinMonth    int
	MinLiteracy int
	Title       string
}

// LevelFilter scopes the card selector for a level. A nil Categories
// slice means all categories are eligible.
type LevelFilter struct {
	MaxDifficulty int
	Categories    []string
}

// FundSpec describes one mutual fund in the catalogue.
type FundSpec struct {
	Name       string
	Risk       string
	Volatility float64
}

// IPOListing is one scheduled offering.
type IPOListing struct {
	Name            string
	PriceBand       int
	ListingGainProb float64
}

// SectorParams are the GBM parameters for one sector's synthetic
// trajectory.
type SectorParams struct {
	Start float64
	Mu    float64
	Sigma float64
}

// DefaultExpense seeds the recurring expense table at session start.
type DefaultExpense struct {
	Name          string
	Amount        int
	Category      string
	IsEssential   bool
	InflationRate float64
}

// Feature gates keyed by level.
type Unlocks struct {
	Loans           int
	Investing       int
	Diversification int
	Mastery         int
}

type Config struct {
	StartingWealth     int
	HappinessStart     int
	CreditScoreStart   int
	LiteracyStart      int
	LifelinesStart     int
	StartMonth         int
	CardsPerMonth      int
	GameDurationMonths int
	MonthlySalary      int

	Sectors         []string
	SectorParams    map[string]SectorParams
	PrimaryTicker   string
	MinSeedTicks    int
	FundStartNAV    float64
	FundFloorNAV    float64
	FundDrift       float64
	NewsThresholdPc float64

	LevelThresholds []LevelThreshold
	LevelFilters    map[int]LevelFilter
	Unlocks         Unlocks

	MutualFunds      map[string]FundSpec
	MinFundBuy       int
	IPOSchedule      map[int]IPOListing
	IPOMinAmount     int
	IPOMaxAmount     int
	FuturesBaseRisk  float64
	FuturesRiskStep  float64
	MaxFuturesMonths int

	DefaultExpenses []DefaultExpense

	FamilyLoanAmount     int
	FamilyLoanWealthCap  int
	FamilyLoanHappyCost  int
	InstantLoanAmount    int
	InstantLoanCredit    int
	InstantLoanHappiness int
	InstantLoanEMI       int
	CreditLimitPerPoint  int

	FreelanceMissProb   float64
	IdleCashFloor       int
	BrokerWealthFloor   int
	StressWealthFloor   int
	WealthDropTrigger   float64
	DebtRatioTrigger    float64
	EMIWealthRatio      float64
	ScenarioGenerateOdds float64
}

// Default returns the shipped game balance.
func Default() Config {
	return Config{
		StartingWealth:     25000,
		HappinessStart:     100,
		CreditScoreStart:   700,
		LiteracyStart:      0,
		LifelinesStart:     3,
		StartMonth:         1,
		CardsPerMonth:      3,
		GameDurationMonths: 60,
		MonthlySalary:      25000,

		Sectors: []string{"gold", "tech", "real_estate"},
		SectorParams: map[string]SectorParams{
			"tech":        {Start: 500, Mu: 0.02, Sigma: 0.15},
			"gold":        {Start: 1800, Mu: 0.005, Sigma: 0.05},
			"real_estate": {Start: 300, Mu: 0.01, Sigma: 0.02},
		},
		PrimaryTicker:   "NIFTYBEES",
		MinSeedTicks:    60,
		FundStartNAV:    100,
		FundFloorNAV:    10,
		FundDrift:       0.008,
		NewsThresholdPc: 5,

		LevelThresholds: []LevelThreshold{
			{Level: 1, MinMonth: 1, MinLiteracy: 0, Title: "The Basics"},
			{Level: 2, MinMonth: 6, MinLiteracy: 20, Title: "Credit & Debt"},
			{Level: 3, MinMonth: 12, MinLiteracy: 45, Title: "Investing"},
			{Level: 4, MinMonth: 24, MinLiteracy: 70, Title: "Diversification"},
			{Level: 5, MinMonth: 36, MinLiteracy: 90, Title: "Mastery"},
		},
		LevelFilters: map[int]LevelFilter{
			1: {MaxDifficulty: 2, Categories: []string{"NEEDS", "WANTS", "EMERGENCY", "SOCIAL"}},
			2: {MaxDifficulty: 3, Categories: []string{"NEEDS", "WANTS", "EMERGENCY", "SOCIAL", "DEBT", "SHOPPING"}},
			3: {MaxDifficulty: 4, Categories: []string{"NEEDS", "WANTS", "EMERGENCY", "SOCIAL", "DEBT", "SHOPPING", "INVESTMENT", "NEWS"}},
			4: {MaxDifficulty: 5, Categories: []string{"NEEDS", "WANTS", "EMERGENCY", "SOCIAL", "DEBT", "SHOPPING", "INVESTMENT", "NEWS", "QUIZ", "TRAP"}},
			5: {MaxDifficulty: 5, Categories: nil},
		},
		Unlocks: Unlocks{Loans: 2, Investing: 3, Diversification: 4, Mastery: 5},

		MutualFunds: map[string]FundSpec{
			"NIFTY50":  {Name: "NIFTY50", Risk: "LOW", Volatility: 0.03},
			"MIDCAP":   {Name: "MIDCAP", Risk: "MEDIUM", Volatility: 0.06},
			"SMALLCAP": {Name: "SMALLCAP", Risk: "HIGH", Volatility: 0.10},
		},
		MinFundBuy: 500,
		IPOSchedule: map[int]IPOListing{
			6:  {Name: "Zomato", PriceBand: 76, ListingGainProb: 0.7},
			12: {Name: "LIC", PriceBand: 900, ListingGainProb: 0.4},
			18: {Name: "Paytm", PriceBand: 2150, ListingGainProb: 0.1},
			24: {Name: "Tata Tech", PriceBand: 500, ListingGainProb: 0.9},
		},
		IPOMinAmount:     10000,
		IPOMaxAmount:     200000,
		FuturesBaseRisk:  0.05,
		FuturesRiskStep:  0.01,
		MaxFuturesMonths: 12,

		DefaultExpenses: []DefaultExpense{
			{Name: "Rent (2BHK)", Amount: 10000, Category: game.CategoryHousing, IsEssential: true, InflationRate: 0.05},
			{Name: "Groceries", Amount: 2500, Category: game.CategoryFood, IsEssential: true, InflationRate: 0.07},
			{Name: "Utilities", Amount: 1000, Category: game.CategoryUtilities, IsEssential: true, InflationRate: 0.03},
			{Name: "Transport", Amount: 1000, Category: game.CategoryTransport, IsEssential: true, InflationRate: 0.05},
		},

		FamilyLoanAmount:     5000,
		FamilyLoanWealthCap:  50000,
		FamilyLoanHappyCost:  5,
		InstantLoanAmount:    10000,
		InstantLoanCredit:    50,
		InstantLoanHappiness: 5,
		InstantLoanEMI:       500,
		CreditLimitPerPoint:  100,

		FreelanceMissProb:   0.30,
		IdleCashFloor:       10000,
		BrokerWealthFloor:   50000,
		StressWealthFloor:   10000,
		WealthDropTrigger:   0.10,
		DebtRatioTrigger:    0.50,
		EMIWealthRatio:      0.40,
		ScenarioGenerateOdds: 0.30,
	}
}

// LevelFor computes the level from month and literacy. A threshold is
// met when either its month or its literacy minimum is reached.
func (c Config) LevelFor(month, literacy int) int {
	level := 1
	for _, t := range c.LevelThresholds {
		if month >= t.MinMonth || literacy >= t.MinLiteracy {
			if t.Level > level {
				level = t.Level
			}
		}
	}
	return level
}

// LevelTitle returns the display title for a level.
func (c Config) LevelTitle(level int) string {
	for _, t := range c.LevelThresholds {
		if t.Level == level {
			return t.Title
		}
	}
	return ""
}

// FilterFor returns the card filter for a level, defaulting to the
// widest filter for out-of-range levels.
func (c Config) FilterFor(level int) LevelFilter {
	if f, ok := c.LevelFilters[level]; ok {
		return f
	}
	return c.LevelFilters[5]
}

// IPOByName finds a scheduled IPO and its opening month.
func (c Config) IPOByName(name string) (int, IPOListing, bool) {
	for month, l := range c.IPOSchedule {
		if l.Name == name {
			return month, l, true
		}
	}
	return 0, IPOListing{}, false
}

// FundNames returns the fund catalogue names in stable order.
func (c Config) FundNames() []string {
	names := maps.Keys(c.MutualFunds)
	slices.Sort(names)
	return names
}

// ValidSector reports whether the sector is tradable.
func (c Config) ValidSector(sector string) bool {
	return slices.Contains(c.Sectors, sector)
}
