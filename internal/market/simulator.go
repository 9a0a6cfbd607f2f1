// Package market generates price trajectories and applies the monthly
// market roll to a session: spot adoption, fund NAV walks, momentum,
// futures quotes, IPO listings, and intra-month event shocks.
package market

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/arthneeti/arthneeti/internal/config"
	"github.com/arthneeti/arthneeti/internal/entropy"
	"github.com/arthneeti/arthneeti/internal/game"
)

// Tick is one row of real market seed data for the primary ticker.
type Tick struct {
	Ticker string
	Date   time.Time
	Close  float64
}

// ForecastProvider turns seed ticks into a forward monthly price path.
// Implementations may be remote; the simulator treats any error as a
// signal to fall back to the synthetic generator.
type ForecastProvider interface {
	Forecast(ctx context.Context, seed []Tick, months int) ([]float64, error)
}

// Simulator owns the stochastic market model.
type Simulator struct {
	cfg config.Config
	rng entropy.Source
}

// NewSimulator builds a simulator over the given tuning and entropy.
func NewSimulator(cfg config.Config, rng entropy.Source) *Simulator {
	return &Simulator{cfg: cfg, rng: rng}
}

// cycleAmplitude scales the smooth business-cycle term layered on the
// GBM drift so synthetic paths are not pure white noise.
const cycleAmplitude = 0.012

// GenerateTrajectory produces a synthetic price path for one sector
// covering months 1..months. Geometric Brownian motion with a
// low-frequency simplex-noise cycle on top.
func (s *Simulator) GenerateTrajectory(sector string, months int, seed int64) []float64 {
	p, ok := s.cfg.SectorParams[sector]
	if !ok {
		p = config.SectorParams{Start: 1000, Mu: 0.08, Sigma: 0.15}
	}
	noise := opensimplex.NewNormalized(seed)
	channel := float64(len(sector)) // stable per-sector noise row

	dt := 1.0 / float64(months)
	drift := (p.Mu - 0.5*p.Sigma*p.Sigma) * dt
	vol := p.Sigma * math.Sqrt(dt)

	prices := make([]float64, months)
	price := p.Start
	for m := 0; m < months; m++ {
		z := s.rng.NormFloat64()
		price *= math.Exp(drift + vol*z)
		cycle := noise.Eval2(float64(m)*0.11, channel)*2 - 1
		price *= 1 + cycleAmplitude*cycle
		if price < 1 {
			price = 1
		}
		prices[m] = math.Floor(price)
	}
	return prices
}

// Trajectories builds the full 60-month price book for a session.
// The primary sector consults the forecast provider when enough seed
// ticks exist; everything else, and any provider failure, uses the
// synthetic generator.
func (s *Simulator) Trajectories(ctx context.Context, provider ForecastProvider, seedTicks []Tick, seed int64) map[string][]float64 {
	months := s.cfg.GameDurationMonths
	out := make(map[string][]float64, len(s.cfg.Sectors))
	for i, sector := range s.cfg.Sectors {
		sectorSeed := seed + int64(i)*7919
		if sector == "tech" && provider != nil && len(seedTicks) >= s.cfg.MinSeedTicks {
			if path, err := provider.Forecast(ctx, seedTicks, months); err == nil && len(path) == months {
				out[sector] = path
				continue
			}
		}
		out[sector] = s.GenerateTrajectory(sector, months, sectorSeed)
	}
	return out
}

// Roll applies the monthly market update in place: adopts the
// pre-generated spot price for each sector, emits news lines for moves
// beyond the threshold, walks fund NAVs, and refreshes momentum from
// the cycle noise. Returns the news lines.
func (s *Simulator) Roll(sess *game.Session, monthPrices map[string]float64, seed int64) []string {
	var news []string
	noise := opensimplex.NewNormalized(seed)

	for _, sector := range s.cfg.Sectors {
		next, ok := monthPrices[sector]
		if !ok {
			continue
		}
		prev := sess.MarketPrices[sector]
		sess.MarketPrices[sector] = next
		if prev > 0 {
			pct := (next - prev) / prev * 100
			if pct > s.cfg.NewsThresholdPc {
				news = append(news, fmt.Sprintf("%s surged %.1f%% this month", sectorLabel(sector), pct))
			} else if pct < -s.cfg.NewsThresholdPc {
				news = append(news, fmt.Sprintf("%s tanked %.1f%% this month", sectorLabel(sector), pct))
			}
		}
		// Momentum refreshes from the slow cycle each month; event
		// shocks pin it to ±3 until the next roll.
		raw := noise.Eval2(float64(sess.CurrentMonth)*0.17, float64(len(sector)))*2 - 1
		sess.MarketTrends[sector] = clampTrend(int(math.Round(raw * 3)))
	}

	for name, spec := range s.cfg.MutualFunds {
		key := "MF_" + name
		nav, ok := sess.MarketPrices[key]
		if !ok {
			nav = s.cfg.FundStartNAV
		}
		change := s.cfg.FundDrift + s.rng.NormFloat64()*spec.Volatility
		nav *= 1 + change
		if nav < s.cfg.FundFloorNAV {
			nav = s.cfg.FundFloorNAV
		}
		sess.MarketPrices[key] = nav
		if change < -0.05 {
			news = append(news, fmt.Sprintf("%s fund NAV dropped sharply", name))
		}
	}
	return news
}

// ApplyEventShock multiplies sector spots by the event's impact map,
// pins momentum to ±3, and returns the headline lines.
func (s *Simulator) ApplyEventShock(sess *game.Session, title string, impacts map[string]float64) []string {
	lines := []string{title}
	for sector, mult := range impacts {
		old, ok := sess.MarketPrices[sector]
		if !ok {
			continue
		}
		next := math.Floor(old * mult)
		if next < 1 {
			next = 1
		}
		sess.MarketPrices[sector] = next
		switch {
		case mult > 1.0:
			sess.MarketTrends[sector] = 3
			lines = append(lines, fmt.Sprintf("%s jumped to ₹%s", sectorLabel(sector), humanize.Commaf(next)))
		case mult < 1.0:
			sess.MarketTrends[sector] = -3
			lines = append(lines, fmt.Sprintf("%s fell to ₹%s", sectorLabel(sector), humanize.Commaf(next)))
		}
	}
	return lines
}

// FuturesQuote prices a cash-settled contract: the spot discounted by
// a base risk premium plus a per-month duration step.
func (s *Simulator) FuturesQuote(spot float64, durationMonths int) float64 {
	discount := s.cfg.FuturesBaseRisk + s.cfg.FuturesRiskStep*float64(durationMonths)
	return math.Floor(spot * (1 - discount))
}

// ListingOutcome is the result of resolving one IPO application.
type ListingOutcome struct {
	Ratio    float64
	Gain     float64
	Refund   int
	Credited int
	Line     string
}

// ResolveListing settles an IPO application on its listing month:
// allotment ratio drawn from {0, 0.5, 1}, then a listing gain on the
// allotted slice (or a loss on a failed listing).
func (s *Simulator) ResolveListing(app game.IPOApplication, listing config.IPOListing) ListingOutcome {
	ratios := []float64{0, 0.5, 1}
	ratio := ratios[s.rng.Intn(len(ratios))]

	var gain float64
	if entropy.Chance(s.rng, listing.ListingGainProb) {
		gain = entropy.Uniform(s.rng, 0.10, 0.80)
	} else {
		gain = entropy.Uniform(s.rng, -0.30, -0.05)
	}

	allotted := float64(app.Amount) * ratio
	refund := float64(app.Amount) - allotted
	finalValue := allotted * (1 + gain)
	credited := int(refund + finalValue)

	var line string
	switch {
	case ratio == 0:
		line = fmt.Sprintf("%s IPO: no allotment, ₹%s refunded", app.Name, humanize.Comma(int64(credited)))
	case gain >= 0:
		line = fmt.Sprintf("%s IPO listed at +%.0f%%, ₹%s credited", app.Name, gain*100, humanize.Comma(int64(credited)))
	default:
		line = fmt.Sprintf("%s IPO listed at %.0f%%, ₹%s credited", app.Name, gain*100, humanize.Comma(int64(credited)))
	}

	return ListingOutcome{Ratio: ratio, Gain: gain, Refund: int(refund), Credited: credited, Line: line}
}

func clampTrend(t int) int {
	if t < -3 {
		return -3
	}
	if t > 3 {
		return 3
	}
	return t
}

func sectorLabel(sector string) string {
	switch sector {
	case "gold":
		return "Gold"
	case "tech":
		return "Tech stocks"
	case "real_estate":
		return "Real estate"
	default:
		return sector
	}
}
