package market

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthneeti/arthneeti/internal/config"
	"github.com/arthneeti/arthneeti/internal/entropy"
	"github.com/arthneeti/arthneeti/internal/game"
)

// scriptedSource replays predetermined values, padding with zeros when
// the script runs out.
type scriptedSource struct {
	floats []float64
	norms  []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) NormFloat64() float64 {
	if len(s.norms) == 0 {
		return 0
	}
	v := s.norms[0]
	s.norms = s.norms[1:]
	return v
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

func newSession() *game.Session {
	return &game.Session{
		CurrentMonth: 2,
		MarketPrices: map[string]float64{
			"gold": 5000, "tech": 1000, "real_estate": 2000,
			"MF_NIFTY50": 100, "MF_MIDCAP": 100, "MF_SMALLCAP": 100,
		},
		MarketTrends: map[string]int{},
	}
}

func TestGenerateTrajectory(t *testing.T) {
	sim := NewSimulator(config.Default(), entropy.NewSeeded(7))

	path := sim.GenerateTrajectory("tech", 60, 99)
	require.Len(t, path, 60)
	for i, p := range path {
		assert.GreaterOrEqual(t, p, 1.0, "month %d", i+1)
		assert.Equal(t, p, float64(int64(p)), "prices are whole rupees at month %d", i+1)
	}
}

func TestGenerateTrajectoryDeterministic(t *testing.T) {
	cfg := config.Default()
	a := NewSimulator(cfg, entropy.NewSeeded(7)).GenerateTrajectory("gold", 24, 5)
	b := NewSimulator(cfg, entropy.NewSeeded(7)).GenerateTrajectory("gold", 24, 5)
	assert.Equal(t, a, b)
}

type fakeForecast struct {
	path []float64
	err  error
}

func (f fakeForecast) Forecast(_ context.Context, _ []Tick, _ int) ([]float64, error) {
	return f.path, f.err
}

func TestTrajectoriesUsesForecastForTech(t *testing.T) {
	cfg := config.Default()
	sim := NewSimulator(cfg, entropy.NewSeeded(1))

	forecast := make([]float64, cfg.GameDurationMonths)
	for i := range forecast {
		forecast[i] = 1500 + float64(i)
	}
	seed := make([]Tick, cfg.MinSeedTicks)

	out := sim.Trajectories(context.Background(), fakeForecast{path: forecast}, seed, 3)
	assert.Equal(t, forecast, out["tech"])
	assert.Len(t, out["gold"], cfg.GameDurationMonths)
	assert.Len(t, out["real_estate"], cfg.GameDurationMonths)
}

func TestTrajectoriesFallsBackOnProviderError(t *testing.T) {
	cfg := config.Default()
	sim := NewSimulator(cfg, entropy.NewSeeded(1))
	seed := make([]Tick, cfg.MinSeedTicks)

	out := sim.Trajectories(context.Background(), fakeForecast{err: errors.New("upstream down")}, seed, 3)
	require.Len(t, out["tech"], cfg.GameDurationMonths)
	for _, p := range out["tech"] {
		assert.GreaterOrEqual(t, p, 1.0)
	}
}

func TestTrajectoriesColdStartWithoutSeedTicks(t *testing.T) {
	cfg := config.Default()
	sim := NewSimulator(cfg, entropy.NewSeeded(1))

	// Provider present but not enough seed data: synthetic path.
	forecast := make([]float64, cfg.GameDurationMonths)
	out := sim.Trajectories(context.Background(), fakeForecast{path: forecast}, nil, 3)
	assert.NotEqual(t, forecast, out["tech"])
}

func TestRollAdoptsSpotsAndEmitsNews(t *testing.T) {
	sim := NewSimulator(config.Default(), &scriptedSource{})
	sess := newSession()

	news := sim.Roll(sess, map[string]float64{
		"gold":        5100, // +2%, quiet
		"tech":        1200, // +20%, surged
		"real_estate": 1700, // -15%, tanked
	}, 42)

	assert.Equal(t, 5100.0, sess.MarketPrices["gold"])
	assert.Equal(t, 1200.0, sess.MarketPrices["tech"])
	assert.Equal(t, 1700.0, sess.MarketPrices["real_estate"])

	joined := ""
	for _, n := range news {
		joined += n + "\n"
	}
	assert.Contains(t, joined, "Tech stocks surged")
	assert.Contains(t, joined, "Real estate tanked")
	assert.NotContains(t, joined, "Gold")
}

func TestRollWalksFundNAVs(t *testing.T) {
	cfg := config.Default()
	// Zero normals: NAV moves by drift alone.
	sim := NewSimulator(cfg, &scriptedSource{})
	sess := newSession()

	sim.Roll(sess, map[string]float64{}, 42)
	assert.InDelta(t, 100*(1+cfg.FundDrift), sess.MarketPrices["MF_NIFTY50"], 1e-9)
}

func TestRollFundNAVFloor(t *testing.T) {
	cfg := config.Default()
	sim := NewSimulator(cfg, &scriptedSource{norms: []float64{-50, -50, -50}})
	sess := newSession()
	sess.MarketPrices["MF_SMALLCAP"] = 11

	sim.Roll(sess, map[string]float64{}, 42)
	assert.Equal(t, cfg.FundFloorNAV, sess.MarketPrices["MF_SMALLCAP"])
}

func TestRollTrendsStayClamped(t *testing.T) {
	sim := NewSimulator(config.Default(), entropy.NewSeeded(3))
	sess := newSession()
	for month := 2; month <= 20; month++ {
		sess.CurrentMonth = month
		sim.Roll(sess, map[string]float64{"gold": 5000, "tech": 1000, "real_estate": 2000}, 42)
		for sector, trend := range sess.MarketTrends {
			assert.GreaterOrEqual(t, trend, -3, sector)
			assert.LessOrEqual(t, trend, 3, sector)
		}
	}
}

func TestApplyEventShock(t *testing.T) {
	sim := NewSimulator(config.Default(), &scriptedSource{})
	sess := newSession()

	lines := sim.ApplyEventShock(sess, "Tech Boom", map[string]float64{
		"tech": 1.25,
		"gold": 0.95,
	})

	assert.Equal(t, 1250.0, sess.MarketPrices["tech"])
	assert.Equal(t, 4750.0, sess.MarketPrices["gold"])
	assert.Equal(t, 3, sess.MarketTrends["tech"])
	assert.Equal(t, -3, sess.MarketTrends["gold"])
	assert.Equal(t, "Tech Boom", lines[0])
}

func TestApplyEventShockFloorsAtOneRupee(t *testing.T) {
	sim := NewSimulator(config.Default(), &scriptedSource{})
	sess := newSession()
	sess.MarketPrices["tech"] = 2

	sim.ApplyEventShock(sess, "Crash", map[string]float64{"tech": 0.1})
	assert.Equal(t, 1.0, sess.MarketPrices["tech"])
}

func TestFuturesQuote(t *testing.T) {
	sim := NewSimulator(config.Default(), &scriptedSource{})

	// Discount is 5% base plus 1% per month of duration, floored to
	// whole rupees.
	prev := 1000.0
	for d := 1; d <= 12; d++ {
		q := sim.FuturesQuote(1000, d)
		want := 1000 * (1 - (0.05 + 0.01*float64(d)))
		assert.InDelta(t, want, q, 1.0, "duration %d", d)
		assert.Less(t, q, prev, "longer contracts pay less")
		assert.Equal(t, q, float64(int64(q)), "quote is whole rupees")
		prev = q
	}
}

func TestResolveListingNoAllotment(t *testing.T) {
	sim := NewSimulator(config.Default(), &scriptedSource{
		ints:   []int{0},         // ratio 0
		floats: []float64{0.0, 0.0}, // gain draw unused by credit math
	})
	out := sim.ResolveListing(
		game.IPOApplication{Name: "Zomato", Amount: 20000},
		config.IPOListing{Name: "Zomato", ListingGainProb: 0.7},
	)

	assert.Equal(t, 0.0, out.Ratio)
	assert.Equal(t, 20000, out.Credited)
	assert.Contains(t, out.Line, "no allotment")
}

func TestResolveListingFullAllotmentGain(t *testing.T) {
	// ratio 1, Chance draw 0.0 < 0.7 succeeds, Uniform draw 0.5 ->
	// gain = 0.10 + 0.5*0.70 = 0.45.
	sim := NewSimulator(config.Default(), &scriptedSource{
		ints:   []int{2},
		floats: []float64{0.0, 0.5},
	})
	out := sim.ResolveListing(
		game.IPOApplication{Name: "Tata Tech", Amount: 10000},
		config.IPOListing{Name: "Tata Tech", ListingGainProb: 0.7},
	)

	assert.Equal(t, 1.0, out.Ratio)
	assert.InDelta(t, 0.45, out.Gain, 1e-9)
	assert.Equal(t, 14500, out.Credited)
	assert.Equal(t, 0, out.Refund)
}

func TestResolveListingHalfAllotmentLoss(t *testing.T) {
	// ratio 0.5, Chance draw 0.99 fails, Uniform draw 0.0 -> gain -0.30.
	// allotted 10000 -> 7000, refund 10000, credited 17000.
	sim := NewSimulator(config.Default(), &scriptedSource{
		ints:   []int{1},
		floats: []float64{0.99, 0.0},
	})
	out := sim.ResolveListing(
		game.IPOApplication{Name: "Paytm", Amount: 20000},
		config.IPOListing{Name: "Paytm", ListingGainProb: 0.1},
	)

	assert.Equal(t, 0.5, out.Ratio)
	assert.InDelta(t, -0.30, out.Gain, 1e-9)
	assert.Equal(t, 10000, out.Refund)
	assert.Equal(t, 17000, out.Credited)
	assert.Contains(t, out.Line, "-30%")
}
