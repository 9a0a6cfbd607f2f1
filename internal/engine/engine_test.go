package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthneeti/arthneeti/internal/advisor"
	"github.com/arthneeti/arthneeti/internal/config"
	"github.com/arthneeti/arthneeti/internal/deck"
	"github.com/arthneeti/arthneeti/internal/entropy"
	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/market"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

// scriptedSource replays predetermined draws, padding with zeros (and
// 0.99 for exhausted Float64 so low-probability branches stay off).
type scriptedSource struct {
	floats []float64
	norms  []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
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

type fixture struct {
	eng   *Engine
	store *persistence.Store
	cfg   config.Config
	user  *game.User
}

func newFixture(t *testing.T, d *deck.Deck, rng entropy.Source) *fixture {
	t.Helper()
	store, err := persistence.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	sim := market.NewSimulator(cfg, rng)
	adv := advisor.New(nil, rng)
	eng := New(cfg, store, d, sim, adv, rng, nil, Options{})

	user, err := store.CreateUser("tester", "-")
	require.NoError(t, err)
	return &fixture{eng: eng, store: store, cfg: cfg, user: user}
}

func (f *fixture) start(t *testing.T) *game.Session {
	t.Helper()
	sess, err := f.eng.StartNewSession(context.Background(), f.user.ID)
	require.NoError(t, err)
	return sess
}

// mutate edits the stored session directly, for arranging mid-game
// states that would take dozens of turns to reach organically.
func (f *fixture) mutate(t *testing.T, sessionID string, fn func(*game.Session)) {
	t.Helper()
	require.NoError(t, f.store.WithTx(func(tx *persistence.Tx) error {
		sess, err := tx.GetSession(sessionID)
		if err != nil {
			return err
		}
		fn(sess)
		return tx.UpdateSession(sess)
	}))
}

func neutralCard(id int64) deck.Card {
	return deck.Card{
		ID: id, Title: "Quiet Week", Category: deck.CategoryWants, Difficulty: 1, MinMonth: 1,
		Choices: []deck.Choice{
			{ID: id*10 + 1, Text: "Carry on", IsRecommended: true},
			{ID: id*10 + 2, Text: "Shrug"},
		},
	}
}

func neutralDeck() *deck.Deck {
	return deck.New([]deck.Card{neutralCard(11)})
}

func TestStartNewSession(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)

	assert.Equal(t, 1, sess.CurrentMonth)
	assert.Equal(t, 25000, sess.Wealth)
	assert.Equal(t, 100, sess.Happiness)
	assert.Equal(t, 700, sess.CreditScore)
	assert.Equal(t, 0, sess.FinancialLiteracy)
	assert.Equal(t, 3, sess.Lifelines)
	assert.Equal(t, 1, sess.CurrentLevel)
	assert.True(t, sess.IsActive)
	assert.Equal(t, 14500, sess.RecurringExpenses)
	assert.NotEmpty(t, sess.GameplayLog)

	for _, sector := range f.cfg.Sectors {
		assert.Greater(t, sess.MarketPrices[sector], 0.0, sector)
		assert.Equal(t, 0, sess.MarketTrends[sector], sector)
	}
	for _, fund := range f.cfg.FundNames() {
		assert.Equal(t, f.cfg.FundStartNAV, sess.MarketPrices["MF_"+fund])
	}

	require.NoError(t, f.store.WithTx(func(tx *persistence.Tx) error {
		expenses, err := tx.ActiveExpenses(sess.ID)
		require.NoError(t, err)
		assert.Len(t, expenses, 4)

		sources, err := tx.IncomeSources(sess.ID)
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, game.IncomeSalary, sources[0].SourceType)
		assert.Equal(t, 25000, sources[0].AmountBase)

		prices, err := tx.StockPricesForMonth(sess.ID, f.cfg.GameDurationMonths)
		require.NoError(t, err)
		assert.Len(t, prices, len(f.cfg.Sectors), "full price book is pre-generated")
		return nil
	}))
}

func TestGetSessionOwnership(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)

	_, err := f.eng.GetSession(sess.ID, "someone-else")
	assert.Equal(t, game.KindPermissionDenied, game.KindOf(err))

	got, err := f.eng.GetSession(sess.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
}

func TestSubmitChoiceAppliesImpactsWithClamps(t *testing.T) {
	card := deck.Card{
		ID: 21, Title: "Windfall", Category: deck.CategoryWants, Difficulty: 1, MinMonth: 1,
		Choices: []deck.Choice{
			{ID: 211, Text: "Take it", WealthImpact: 5000, HappinessImpact: 50, CreditImpact: 500, LiteracyImpact: -10},
		},
	}
	f := newFixture(t, deck.New([]deck.Card{card}), entropy.NewSeeded(1))
	sess := f.start(t)

	res, err := f.eng.SubmitChoice(context.Background(), f.user.ID, sess.ID, 21, 211)
	require.NoError(t, err)

	assert.Equal(t, 30000, res.Session.Wealth)
	assert.Equal(t, 100, res.Session.Happiness, "clamped at 100")
	assert.Equal(t, 900, res.Session.CreditScore, "clamped at 900")
	assert.Equal(t, 0, res.Session.FinancialLiteracy, "literacy never negative")
	assert.False(t, res.MonthAdvanced)
	assert.False(t, res.GameOver)
}

func TestSubmitChoiceRejectsForeignChoice(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)

	_, err := f.eng.SubmitChoice(context.Background(), f.user.ID, sess.ID, 11, 999)
	assert.Equal(t, game.KindValidation, game.KindOf(err))

	_, err = f.eng.SubmitChoice(context.Background(), f.user.ID, sess.ID, 404, 111)
	assert.Equal(t, game.KindNotFound, game.KindOf(err))
}

func TestThreeCardsAdvanceMonth(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := f.eng.SubmitChoice(ctx, f.user.ID, sess.ID, 11, 111)
		require.NoError(t, err)
		assert.False(t, res.MonthAdvanced)
		assert.Equal(t, 1, res.Session.CurrentMonth)
	}

	res, err := f.eng.SubmitChoice(ctx, f.user.ID, sess.ID, 11, 111)
	require.NoError(t, err)
	assert.True(t, res.MonthAdvanced)
	assert.Equal(t, 2, res.Session.CurrentMonth)
	// 25,000 start + 25,000 salary - 14,500 bills.
	assert.Equal(t, 35500, res.Session.Wealth)
	assert.Equal(t, 99, res.Session.Happiness, "hedonic drift above 90")
	assert.Contains(t, res.Feedback, "Month 2 started")
}

func TestSkipPenaltiesByCategory(t *testing.T) {
	tests := []struct {
		category      string
		wantHappiness int
		wantCredit    int
	}{
		{deck.CategoryWants, 95, 695},
		{deck.CategoryEmergency, 85, 680},
		{deck.CategoryNeeds, 85, 680},
		{deck.CategoryInvestment, 95, 690},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			card := neutralCard(11)
			card.Category = tt.category
			f := newFixture(t, deck.New([]deck.Card{card}), entropy.NewSeeded(1))
			sess := f.start(t)

			res, err := f.eng.SkipCard(context.Background(), f.user.ID, sess.ID, 11)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHappiness, res.Session.Happiness)
			assert.Equal(t, tt.wantCredit, res.Session.CreditScore)
			assert.Contains(t, res.Feedback, "Skipped")
		})
	}
}

func TestSkipsCountTowardMonthQuota(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)
	ctx := context.Background()

	_, err := f.eng.SubmitChoice(ctx, f.user.ID, sess.ID, 11, 111)
	require.NoError(t, err)
	_, err = f.eng.SkipCard(ctx, f.user.ID, sess.ID, 11)
	require.NoError(t, err)

	res, err := f.eng.SkipCard(ctx, f.user.ID, sess.ID, 11)
	require.NoError(t, err)
	assert.True(t, res.MonthAdvanced)
	assert.Equal(t, 2, res.Session.CurrentMonth)
}

func TestCardExpenseAddAndCancel(t *testing.T) {
	cards := []deck.Card{
		{
			ID: 31, Title: "Streaming Bundle Deal", Category: deck.CategoryWants, Difficulty: 1, MinMonth: 1,
			Choices: []deck.Choice{
				{ID: 311, Text: "Subscribe", WealthImpact: 0, AddsExpense: 400, ExpenseName: "Streaming Bundle"},
			},
		},
		{
			ID: 32, Title: "Subscription Audit", Category: deck.CategoryWants, Difficulty: 1, MinMonth: 1,
			Choices: []deck.Choice{
				{ID: 321, Text: "Cut it", CancelsExpense: "Streaming Bundle"},
			},
		},
	}
	f := newFixture(t, deck.New(cards), entropy.NewSeeded(1))
	sess := f.start(t)
	ctx := context.Background()

	_, err := f.eng.SubmitChoice(ctx, f.user.ID, sess.ID, 31, 311)
	require.NoError(t, err)

	require.NoError(t, f.store.WithTx(func(tx *persistence.Tx) error {
		expenses, err := tx.ActiveExpenses(sess.ID)
		require.NoError(t, err)
		require.Len(t, expenses, 5)
		added := expenses[4]
		assert.Equal(t, "Streaming Bundle", added.Name)
		assert.Equal(t, 400, added.Amount)
		assert.Equal(t, game.CategoryLifestyle, added.Category)
		assert.False(t, added.IsEssential)
		assert.InDelta(t, 0.04, added.InflationRate, 1e-9)
		return nil
	}))

	res, err := f.eng.SubmitChoice(ctx, f.user.ID, sess.ID, 32, 321)
	require.NoError(t, err)
	assert.Contains(t, res.Feedback, "Cancelled Streaming Bundle")

	require.NoError(t, f.store.WithTx(func(tx *persistence.Tx) error {
		expenses, err := tx.ActiveExpenses(sess.ID)
		require.NoError(t, err)
		assert.Len(t, expenses, 4)
		return nil
	}))
}

func TestMarketEventCardShocksPrices(t *testing.T) {
	card := deck.Card{
		ID: 41, Title: "Tech Crash", Category: deck.CategoryNews, Difficulty: 3, MinMonth: 1,
		MarketEvent: &deck.MarketEvent{
			Title:         "Tech Crash",
			SectorImpacts: map[string]float64{"tech": 0.5},
		},
		Choices: []deck.Choice{{ID: 411, Text: "Hold steady"}},
	}
	f := newFixture(t, deck.New([]deck.Card{card}), entropy.NewSeeded(1))
	sess := f.start(t)
	before := sess.MarketPrices["tech"]

	res, err := f.eng.SubmitChoice(context.Background(), f.user.ID, sess.ID, 41, 411)
	require.NoError(t, err)
	assert.Contains(t, res.Feedback, "MARKET NEWS")
	assert.InDelta(t, before*0.5, res.Session.MarketPrices["tech"], 1.0)
	assert.Equal(t, -3, res.Session.MarketTrends["tech"])
}

func TestBankruptcyEndsGameImmediately(t *testing.T) {
	card := deck.Card{
		ID: 51, Title: "Everything Goes Wrong", Category: deck.CategoryEmergency, Difficulty: 2, MinMonth: 1,
		Choices: []deck.Choice{{ID: 511, Text: "Pay up", WealthImpact: -30000}},
	}
	f := newFixture(t, deck.New([]deck.Card{card}), entropy.NewSeeded(1))
	sess := f.start(t)

	res, err := f.eng.SubmitChoice(context.Background(), f.user.ID, sess.ID, 51, 511)
	require.NoError(t, err)
	assert.True(t, res.GameOver)
	assert.Equal(t, game.EndBankruptcy, res.GameOverReason)
	require.NotNil(t, res.FinalPersona)
	assert.Equal(t, "The Happy-Go-Lucky", res.FinalPersona.Persona)
	assert.False(t, res.Session.IsActive)
	assert.NotEmpty(t, res.Session.FinalReport)

	// Finished sessions reject further verbs.
	_, err = f.eng.SubmitChoice(context.Background(), f.user.ID, sess.ID, 51, 511)
	assert.Equal(t, game.KindValidation, game.KindOf(err))

	hist, err := f.store.HistoryForUser(f.user.ID, 5)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, game.EndBankruptcy, hist[0].EndReason)

	profile, err := f.store.ProfileForUser(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.TotalGames)
	assert.Equal(t, 100, profile.HighestHappiness)
	assert.Equal(t, game.CareerSalaried, profile.CareerStage)
}

func TestBurnoutEndsGame(t *testing.T) {
	card := deck.Card{
		ID: 52, Title: "Grind Culture", Category: deck.CategoryTrap, Difficulty: 2, MinMonth: 1,
		Choices: []deck.Choice{{ID: 521, Text: "Push through", HappinessImpact: -100}},
	}
	f := newFixture(t, deck.New([]deck.Card{card}), entropy.NewSeeded(1))
	sess := f.start(t)

	res, err := f.eng.SubmitChoice(context.Background(), f.user.ID, sess.ID, 52, 521)
	require.NoError(t, err)
	assert.True(t, res.GameOver)
	assert.Equal(t, game.EndBurnout, res.GameOverReason)
	assert.Equal(t, 0, res.Session.Happiness)
}

func TestFullGameCompletes(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(7))
	sess := f.start(t)
	ctx := context.Background()

	var final *Result
	for turn := 0; turn < f.cfg.GameDurationMonths*f.cfg.CardsPerMonth; turn++ {
		res, err := f.eng.SubmitChoice(ctx, f.user.ID, sess.ID, 11, 111)
		require.NoError(t, err)
		if res.GameOver {
			final = res
			break
		}
	}

	require.NotNil(t, final, "game must end by month 61")
	assert.Equal(t, game.EndCompleted, final.GameOverReason)
	assert.Equal(t, f.cfg.GameDurationMonths+1, final.Session.CurrentMonth)
	assert.Equal(t, 90, final.Session.Happiness, "hedonic drift settles at 90")
	// Closed form: 25,000 start + 60 x 25,000 salary, minus bills that
	// inflate on months 13/25/37/49/61 with per-expense truncation:
	// 11 x 14,500 + 12 x 15,255 + 12 x 16,049 + 12 x 16,886
	// + 12 x 17,767 + 18,696 = 969,680 drained.
	assert.Equal(t, 555320, final.Session.Wealth)
	assert.Equal(t, 18696, final.Session.RecurringExpenses)
	require.NotNil(t, final.FinalPersona)
	assert.Equal(t, "The Financial Guru", final.FinalPersona.Persona)
	assert.Contains(t, final.Session.FinalReport, "## Summary")
}

func TestLifelineRevealsRecommendation(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)

	for want := 2; want >= 0; want-- {
		hint, err := f.eng.UseLifeline(f.user.ID, sess.ID, 11)
		require.NoError(t, err)
		assert.Equal(t, int64(111), hint.ChoiceID)
		assert.Equal(t, want, hint.LifelinesLeft)
	}

	_, err := f.eng.UseLifeline(f.user.ID, sess.ID, 11)
	assert.Equal(t, game.KindValidation, game.KindOf(err))
}

func TestAnnualInflationOnMonthThirteen(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)
	f.mutate(t, sess.ID, func(s *game.Session) { s.CurrentMonth = 12 })

	require.NoError(t, f.store.WithTx(func(tx *persistence.Tx) error {
		s, err := tx.GetSession(sess.ID)
		require.NoError(t, err)
		adv, err := f.eng.advanceMonth(tx, s)
		require.NoError(t, err)

		assert.Equal(t, 13, s.CurrentMonth)
		// 10,000->10,500, 2,500->2,675, 1,000->1,030, 1,000->1,050.
		assert.Equal(t, 15255, s.RecurringExpenses)
		assert.Contains(t, adv.report, "rose to")
		return tx.UpdateSession(s)
	}))

	// Month 14 applies no further inflation.
	require.NoError(t, f.store.WithTx(func(tx *persistence.Tx) error {
		s, err := tx.GetSession(sess.ID)
		require.NoError(t, err)
		_, err = f.eng.advanceMonth(tx, s)
		require.NoError(t, err)
		assert.Equal(t, 15255, s.RecurringExpenses)
		return nil
	}))
}

func TestFreelanceIncomeVariance(t *testing.T) {
	// First draw 0.5 >= miss prob: gig lands. Second draw 0.5 scales
	// the base by U(0.8, 1.2) midpoint = 1.0.
	rng := &scriptedSource{floats: []float64{0.5, 0.5}}
	f := newFixture(t, neutralDeck(), rng)
	sess := f.start(t)

	require.NoError(t, f.store.WithTx(func(tx *persistence.Tx) error {
		sources, err := tx.IncomeSources(sess.ID)
		require.NoError(t, err)
		// Replace the salary with freelance gigs for this run.
		_ = sources
		return tx.InsertIncomeSource(&game.IncomeSource{
			SessionID: sess.ID, SourceType: game.IncomeFreelance, AmountBase: 10000,
		})
	}))

	require.NoError(t, f.store.WithTx(func(tx *persistence.Tx) error {
		s, err := tx.GetSession(sess.ID)
		require.NoError(t, err)
		_, err = f.eng.advanceMonth(tx, s)
		require.NoError(t, err)
		// 25,000 + 25,000 salary + 10,000 gig - 14,500 bills.
		assert.Equal(t, 45500, s.Wealth)
		return nil
	}))
}

func TestFreelanceMiss(t *testing.T) {
	rng := &scriptedSource{floats: []float64{0.1}} // under miss prob
	f := newFixture(t, neutralDeck(), rng)
	sess := f.start(t)

	require.NoError(t, f.store.WithTx(func(tx *persistence.Tx) error {
		// Freelance only: drop the salary by recreating the session's
		// sources is overkill; a second source suffices to observe the
		// miss via exact arithmetic.
		return tx.InsertIncomeSource(&game.IncomeSource{
			SessionID: sess.ID, SourceType: game.IncomeFreelance, AmountBase: 10000,
		})
	}))

	require.NoError(t, f.store.WithTx(func(tx *persistence.Tx) error {
		s, err := tx.GetSession(sess.ID)
		require.NoError(t, err)
		adv, err := f.eng.advanceMonth(tx, s)
		require.NoError(t, err)
		assert.Equal(t, 35500, s.Wealth, "salary only, gig missed")
		assert.Contains(t, adv.report, "No freelance gig")
		return nil
	}))
}

func TestLevelNeverDecreases(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)

	f.mutate(t, sess.ID, func(s *game.Session) {
		s.FinancialLiteracy = 45
	})
	got, err := f.eng.GetSession(sess.ID, f.user.ID)
	require.NoError(t, err)
	f.eng.refreshLevel(got)
	assert.Equal(t, 3, got.CurrentLevel)

	got.FinancialLiteracy = 0
	f.eng.refreshLevel(got)
	assert.Equal(t, 3, got.CurrentLevel, "level holds when literacy drops")
}
