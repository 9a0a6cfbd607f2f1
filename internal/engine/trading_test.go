package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthneeti/arthneeti/internal/entropy"
	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

// unlockInvesting raises literacy so the next gated verb recomputes the
// level to 3 (investing) or higher.
func unlockInvesting(t *testing.T, f *fixture, sessionID string, literacy int) {
	t.Helper()
	f.mutate(t, sessionID, func(s *game.Session) { s.FinancialLiteracy = literacy })
}

func TestBuyStockGatedBeforeInvestingLevel(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)

	_, err := f.eng.BuyStock(f.user.ID, sess.ID, "gold", 5000)
	assert.Equal(t, game.KindGated, game.KindOf(err))
}

func TestBuyStockValidation(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)
	unlockInvesting(t, f, sess.ID, 45)

	_, err := f.eng.BuyStock(f.user.ID, sess.ID, "crypto", 5000)
	assert.Equal(t, game.KindValidation, game.KindOf(err))

	_, err = f.eng.BuyStock(f.user.ID, sess.ID, "gold", 0)
	assert.Equal(t, game.KindValidation, game.KindOf(err))

	_, err = f.eng.BuyStock(f.user.ID, sess.ID, "gold", 999999)
	assert.Equal(t, game.KindInsufficientFunds, game.KindOf(err))
}

func TestDiversificationGate(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)
	unlockInvesting(t, f, sess.ID, 45)

	_, err := f.eng.BuyStock(f.user.ID, sess.ID, "gold", 5000)
	require.NoError(t, err)

	_, err = f.eng.BuyStock(f.user.ID, sess.ID, "tech", 5000)
	assert.Equal(t, game.KindGated, game.KindOf(err), "second sector needs level 4")

	unlockInvesting(t, f, sess.ID, 70)
	res, err := f.eng.BuyStock(f.user.ID, sess.ID, "tech", 5000)
	require.NoError(t, err)
	assert.Positive(t, res.Session.Portfolio["tech"])
}

func TestStockRoundTripLosesAtMostOneRupee(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)
	unlockInvesting(t, f, sess.ID, 45)

	start := 25000
	res, err := f.eng.BuyStock(f.user.ID, sess.ID, "gold", 10000)
	require.NoError(t, err)
	assert.Equal(t, start-10000, res.Session.Wealth)
	units := res.Session.Portfolio["gold"]
	require.Positive(t, units)
	require.Len(t, res.Session.PurchaseHistory, 1)
	assert.Equal(t, "gold", res.Session.PurchaseHistory[0].Sector)

	res, err = f.eng.SellStock(f.user.ID, sess.ID, "gold", units)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Session.Wealth, start-1)
	assert.LessOrEqual(t, res.Session.Wealth, start)
	assert.InDelta(t, 0, res.Session.Portfolio["gold"], 1e-9)
}

func TestSellStockMoreThanOwned(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)
	unlockInvesting(t, f, sess.ID, 45)

	_, err := f.eng.SellStock(f.user.ID, sess.ID, "gold", 1)
	assert.Equal(t, game.KindInsufficientUnits, game.KindOf(err))
}

func TestMutualFundRoundTrip(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)
	unlockInvesting(t, f, sess.ID, 45)

	_, err := f.eng.BuyMutualFund(f.user.ID, sess.ID, "NIFTY50", 400)
	assert.Equal(t, game.KindValidation, game.KindOf(err), "below minimum investment")

	_, err = f.eng.BuyMutualFund(f.user.ID, sess.ID, "BITCOIN", 1000)
	assert.Equal(t, game.KindValidation, game.KindOf(err))

	res, err := f.eng.BuyMutualFund(f.user.ID, sess.ID, "NIFTY50", 1000)
	require.NoError(t, err)
	holding := res.Session.MutualFunds["NIFTY50"]
	assert.InDelta(t, 10, holding.Units, 1e-9, "NAV starts at 100")
	assert.InDelta(t, 1000, holding.Invested, 1e-9)
	assert.Equal(t, 24000, res.Session.Wealth)

	// Partial redemption prorates the cost basis.
	res, err = f.eng.SellMutualFund(f.user.ID, sess.ID, "NIFTY50", 5)
	require.NoError(t, err)
	holding = res.Session.MutualFunds["NIFTY50"]
	assert.InDelta(t, 5, holding.Units, 1e-9)
	assert.InDelta(t, 500, holding.Invested, 1e-9)
	assert.Equal(t, 24500, res.Session.Wealth)

	// Selling the rest deletes the dust position.
	res, err = f.eng.SellMutualFund(f.user.ID, sess.ID, "NIFTY50", 5)
	require.NoError(t, err)
	_, ok := res.Session.MutualFunds["NIFTY50"]
	assert.False(t, ok)
	assert.Equal(t, 25000, res.Session.Wealth)
}

func TestSellMutualFundErrors(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)
	unlockInvesting(t, f, sess.ID, 45)

	_, err := f.eng.SellMutualFund(f.user.ID, sess.ID, "NIFTY50", 1)
	assert.Equal(t, game.KindNotFound, game.KindOf(err))

	_, err = f.eng.BuyMutualFund(f.user.ID, sess.ID, "NIFTY50", 1000)
	require.NoError(t, err)
	_, err = f.eng.SellMutualFund(f.user.ID, sess.ID, "NIFTY50", 99)
	assert.Equal(t, game.KindInsufficientUnits, game.KindOf(err))
}

func TestFuturesRequireMasteryAndHoldings(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)
	unlockInvesting(t, f, sess.ID, 45)

	_, err := f.eng.SellFutures(f.user.ID, sess.ID, "gold", 1, 6)
	assert.Equal(t, game.KindGated, game.KindOf(err))

	unlockInvesting(t, f, sess.ID, 90)
	_, err = f.eng.SellFutures(f.user.ID, sess.ID, "gold", 1, 6)
	assert.Equal(t, game.KindInsufficientUnits, game.KindOf(err))

	_, err = f.eng.SellFutures(f.user.ID, sess.ID, "gold", 1, 24)
	assert.Equal(t, game.KindValidation, game.KindOf(err), "duration cap")
}

func TestFuturesSalePaysDiscountedSpot(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)
	unlockInvesting(t, f, sess.ID, 90)

	res, err := f.eng.BuyStock(f.user.ID, sess.ID, "gold", 10000)
	require.NoError(t, err)
	units := res.Session.Portfolio["gold"]
	wealthBefore := res.Session.Wealth
	spot := res.Session.MarketPrices["gold"]

	res, err = f.eng.SellFutures(f.user.ID, sess.ID, "gold", units, 6)
	require.NoError(t, err)
	assert.InDelta(t, 0, res.Session.Portfolio["gold"], 1e-9)

	payout := res.Session.Wealth - wealthBefore
	assert.Positive(t, payout)
	assert.Less(t, float64(payout), units*spot, "contract discounts the spot")

	require.NoError(t, f.store.WithTx(func(tx *persistence.Tx) error {
		contracts, err := tx.FuturesForSession(sess.ID)
		require.NoError(t, err)
		require.Len(t, contracts, 1)
		assert.Equal(t, "gold", contracts[0].Sector)
		assert.Equal(t, 6, contracts[0].DurationMonths)
		assert.InDelta(t, units, contracts[0].Units, 1e-9)
		return nil
	}))
}

func TestIPOApplication(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)

	_, err := f.eng.ApplyForIPO(f.user.ID, sess.ID, "Dodgy Ventures", 15000)
	assert.Equal(t, game.KindNotFound, game.KindOf(err))

	_, err = f.eng.ApplyForIPO(f.user.ID, sess.ID, "Zomato", 15000)
	assert.Equal(t, game.KindValidation, game.KindOf(err), "Zomato opens in month 6")

	f.mutate(t, sess.ID, func(s *game.Session) {
		s.CurrentMonth = 6
		s.Wealth = 50000
	})

	_, err = f.eng.ApplyForIPO(f.user.ID, sess.ID, "Zomato", 5000)
	assert.Equal(t, game.KindValidation, game.KindOf(err), "below minimum bid")
	_, err = f.eng.ApplyForIPO(f.user.ID, sess.ID, "Zomato", 300000)
	assert.Equal(t, game.KindValidation, game.KindOf(err), "above maximum bid")
	_, err = f.eng.ApplyForIPO(f.user.ID, sess.ID, "Zomato", 60000)
	assert.Equal(t, game.KindInsufficientFunds, game.KindOf(err))

	res, err := f.eng.ApplyForIPO(f.user.ID, sess.ID, "Zomato", 15000)
	require.NoError(t, err)
	assert.Equal(t, 35000, res.Session.Wealth)
	require.Len(t, res.Session.ActiveIPOs, 1)
	assert.Equal(t, "APPLIED", res.Session.ActiveIPOs[0].Status)

	_, err = f.eng.ApplyForIPO(f.user.ID, sess.ID, "Zomato", 15000)
	assert.Equal(t, game.KindDuplicateApplication, game.KindOf(err))
}

func TestIPOResolvesOnNextMonth(t *testing.T) {
	// Scripted listing: the month advance draws 3 fund-NAV normals
	// first (padded to 0), then Intn 2 -> full allotment, Chance 0.0
	// succeeds, Uniform 0.5 -> gain 0.10 + 0.5*0.70 = +45%.
	rng := &scriptedSource{ints: []int{2}, floats: []float64{0.0, 0.5}}
	f := newFixture(t, neutralDeck(), rng)
	sess := f.start(t)
	f.mutate(t, sess.ID, func(s *game.Session) {
		s.CurrentMonth = 6
		s.Wealth = 50000
	})

	res, err := f.eng.ApplyForIPO(f.user.ID, sess.ID, "Zomato", 20000)
	require.NoError(t, err)
	assert.Equal(t, 30000, res.Session.Wealth)

	require.NoError(t, f.store.WithTx(func(tx *persistence.Tx) error {
		s, err := tx.GetSession(sess.ID)
		require.NoError(t, err)
		adv, err := f.eng.advanceMonth(tx, s)
		require.NoError(t, err)

		assert.Empty(t, s.ActiveIPOs, "application settled at listing")
		assert.Contains(t, adv.report, "Zomato IPO listed at +45%")
		assert.Contains(t, adv.report, "29,000")
		// 30,000 + 25,000 salary - 14,500 bills + 20,000 * 1.45 listed.
		assert.Equal(t, 69500, s.Wealth)
		return nil
	}))
}

func TestMarketStatusPricesTheBook(t *testing.T) {
	f := newFixture(t, neutralDeck(), entropy.NewSeeded(1))
	sess := f.start(t)
	unlockInvesting(t, f, sess.ID, 45)

	_, err := f.eng.BuyStock(f.user.ID, sess.ID, "gold", 10000)
	require.NoError(t, err)
	_, err = f.eng.BuyMutualFund(f.user.ID, sess.ID, "MIDCAP", 2000)
	require.NoError(t, err)

	status, err := f.eng.GetMarketStatus(f.user.ID, sess.ID)
	require.NoError(t, err)
	require.Len(t, status.Holdings, 2)
	assert.Equal(t, "gold", status.Holdings[0].Key)
	assert.Equal(t, "MF_MIDCAP", status.Holdings[1].Key)
	assert.InDelta(t, 12000, status.PortfolioValue, 2)
	assert.Equal(t, 13000, status.Wealth)
	assert.Equal(t, status.Wealth+status.PortfolioValue, status.NetWorth)
}
