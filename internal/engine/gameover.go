package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

// checkGameOver evaluates the end conditions in order.
func (e *Engine) checkGameOver(sess *game.Session) (bool, game.EndReason) {
	if sess.Wealth <= 0 {
		return true, game.EndBankruptcy
	}
	if sess.Happiness <= game.MinHappiness {
		return true, game.EndBurnout
	}
	if sess.CurrentMonth > e.cfg.GameDurationMonths {
		return true, game.EndCompleted
	}
	return false, ""
}

// generatePersona classifies the finished run.
func generatePersona(sess *game.Session) *game.Persona {
	w, h, s := sess.Wealth, sess.Happiness, sess.FinancialLiteracy

	var p, d string
	switch {
	case w > 100000 && h > 80:
		p, d = "The Financial Guru", "Mastered wealth AND happiness."
	case w > 100000 && h < 40:
		p, d = "The Miser", "Rich but miserable."
	case w < 10000 && h > 80:
		p, d = "The Happy-Go-Lucky", "Broke but smiling."
	case s >= 80:
		p, d = "The Warren Buffett", "Strategic genius."
	case s >= 50:
		p, d = "The Balanced Spender", "Good balance."
	default:
		p, d = "The FOMO Victim", "Driven by trends."
	}
	return &game.Persona{Persona: p, Description: d, FinalScore: s, NetWorth: w}
}

// finalize closes the session exactly once: deactivates it, renders
// the final report (LLM when wired, deterministic template otherwise),
// writes the history row, and folds the run into the profile
// aggregates.
func (e *Engine) finalize(ctx context.Context, tx *persistence.Tx, sess *game.Session, reason game.EndReason) (*game.Persona, error) {
	sess.IsActive = false
	persona := generatePersona(sess)

	if sess.FinalReport == "" {
		sess.FinalReport = e.renderReport(ctx, sess, reason)
	}

	portfolioValue := sess.PortfolioValue()

	if err := tx.InsertHistory(&game.GameHistory{
		UserID:            sess.UserID,
		SessionID:         sess.ID,
		FinalWealth:       sess.Wealth,
		FinalHappiness:    sess.Happiness,
		FinalCreditScore:  sess.CreditScore,
		FinancialLiteracy: sess.FinancialLiteracy,
		Persona:           persona.Persona,
		EndReason:         reason,
		MonthsPlayed:      sess.CurrentMonth,
	}); err != nil {
		return nil, err
	}

	profile, err := tx.Profile(sess.UserID)
	if err != nil {
		return nil, err
	}
	profile.TotalGames++
	profile.HighestWealth = max(profile.HighestWealth, sess.Wealth+portfolioValue)
	profile.HighestScore = max(profile.HighestScore, sess.FinancialLiteracy)
	profile.HighestCreditScore = max(profile.HighestCreditScore, sess.CreditScore)
	profile.HighestHappiness = max(profile.HighestHappiness, sess.Happiness)
	profile.HighestStockProfit = max(profile.HighestStockProfit, portfolioValue)
	if profile.CareerStage == "" {
		profile.CareerStage = game.CareerSalaried
	}
	if err := tx.SaveProfile(profile); err != nil {
		return nil, err
	}

	slog.Info("session finalized",
		"session", sess.ID, "reason", reason,
		"month", sess.CurrentMonth, "wealth", sess.Wealth, "persona", persona.Persona)
	return persona, nil
}

// renderReport tries the LLM renderer, falling back to the
// deterministic template on any failure.
func (e *Engine) renderReport(ctx context.Context, sess *game.Session, reason game.EndReason) string {
	if e.reports != nil {
		text, err := e.reports.RenderReport(ctx, sess.GameplayLog,
			sess.Wealth, sess.Happiness, sess.CreditScore, sess.FinancialLiteracy, string(reason))
		if err == nil && text != "" {
			return strings.TrimSpace(text)
		}
		slog.Debug("report render failed, using template", "error", err)
	}
	return fallbackReport(sess, reason)
}

func fallbackReport(sess *game.Session, reason game.EndReason) string {
	portfolioValue := 0
	var holdings []string
	for sector, units := range sess.Portfolio {
		if units <= 0 {
			continue
		}
		price := sess.MarketPrices[sector]
		value := int(units * price)
		portfolioValue += value
		holdings = append(holdings, fmt.Sprintf("%s: %.2f units @ ₹%s (₹%s)",
			titleCase(sector), units, humanize.Commaf(price), humanize.Comma(int64(value))))
	}
	for name, h := range sess.MutualFunds {
		nav := sess.MarketPrices["MF_"+name]
		value := int(h.Units * nav)
		portfolioValue += value
		holdings = append(holdings, fmt.Sprintf("%s fund: %.2f units (₹%s)",
			name, h.Units, humanize.Comma(int64(value))))
	}
	breakdown := "No active holdings."
	if len(holdings) > 0 {
		breakdown = strings.Join(holdings, "; ")
	}

	return fmt.Sprintf(`## Summary
- Outcome: **%s** after month **%d**.
- Final cash: **₹%s**. Portfolio value: **₹%s**.
- Happiness: **%d**. Credit score: **%d**.

## Highlights
- Portfolio: %s
- Recurring expenses: ₹%s

## Risks
- Watch cash flow relative to recurring bills.
- Keep credit score healthy by avoiding high-interest debt.

## Recommendations
- Build a 3-6 month emergency fund.
- Automate savings with a monthly SIP.
- Review recurring expenses and cancel low-value subscriptions.
`,
		reason, sess.CurrentMonth,
		humanize.Comma(int64(sess.Wealth)), humanize.Comma(int64(portfolioValue)),
		sess.Happiness, sess.CreditScore,
		breakdown, humanize.Comma(int64(sess.RecurringExpenses)))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}
