package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

// StartNewSession creates a fresh session for the user: starting
// stats, the four default expenses, a salary income source, fund NAVs,
// and the full 60-month price book.
func (e *Engine) StartNewSession(ctx context.Context, userID string) (*game.Session, error) {
	now := time.Now().UTC()
	sess := &game.Session{
		ID:                uuid.NewString(),
		UserID:            userID,
		CurrentMonth:      e.cfg.StartMonth,
		Wealth:            e.cfg.StartingWealth,
		Happiness:         e.cfg.HappinessStart,
		CreditScore:       e.cfg.CreditScoreStart,
		FinancialLiteracy: e.cfg.LiteracyStart,
		Lifelines:         e.cfg.LifelinesStart,
		CurrentLevel:      1,
		IsActive:          true,
		MarketPrices:      map[string]float64{},
		MarketTrends:      map[string]int{},
		Portfolio:         map[string]float64{},
		MutualFunds:       map[string]game.FundHolding{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// Price book: forecast-backed for the primary sector when enough
	// seed ticks exist, synthetic otherwise.
	seedTicks, err := e.store.RecentTicks(e.cfg.PrimaryTicker, e.cfg.MinSeedTicks)
	if err != nil {
		slog.Warn("seed tick load failed, using synthetic paths", "error", err)
		seedTicks = nil
	}
	seed := sessionSeed(sess.ID)
	trajectories := e.market.Trajectories(ctx, e.forecast, seedTicks, seed)

	// Month 1 spots and starting NAVs.
	for sector, path := range trajectories {
		if len(path) > 0 {
			sess.MarketPrices[sector] = path[0]
		}
		sess.MarketTrends[sector] = 0
	}
	for _, name := range e.cfg.FundNames() {
		sess.MarketPrices["MF_"+name] = e.cfg.FundStartNAV
	}

	drain := 0
	for _, de := range e.cfg.DefaultExpenses {
		drain += de.Amount
	}
	sess.RecurringExpenses = drain

	appendLog(sess, "Month %d: Game started with ₹%d.", sess.CurrentMonth, sess.Wealth)

	err = e.store.WithTx(func(tx *persistence.Tx) error {
		if err := tx.InsertSession(sess); err != nil {
			return err
		}
		for _, de := range e.cfg.DefaultExpenses {
			exp := &game.RecurringExpense{
				SessionID:     sess.ID,
				Name:          de.Name,
				Amount:        de.Amount,
				Category:      de.Category,
				IsEssential:   de.IsEssential,
				InflationRate: de.InflationRate,
				StartedMonth:  sess.CurrentMonth,
			}
			if err := tx.InsertExpense(exp); err != nil {
				return err
			}
		}
		salary := &game.IncomeSource{
			SessionID:  sess.ID,
			SourceType: game.IncomeSalary,
			AmountBase: e.cfg.MonthlySalary,
		}
		if err := tx.InsertIncomeSource(salary); err != nil {
			return err
		}
		return tx.InsertStockHistory(sess.ID, trajectories)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("session started", "session", sess.ID, "user", userID)
	return sess, nil
}

// GetSession returns a session after an ownership check.
func (e *Engine) GetSession(sessionID, userID string) (*game.Session, error) {
	sess, err := e.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, game.E(game.KindPermissionDenied, "session belongs to another user")
	}
	return sess, nil
}
