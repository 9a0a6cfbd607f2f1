package engine

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/arthneeti/arthneeti/internal/advisor"
	"github.com/arthneeti/arthneeti/internal/entropy"
	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

// advanceResult carries the month advancer's outputs back to the verb
// that triggered it.
type advanceResult struct {
	report   string
	chatbot  *advisor.CharacterMessage
	gameOver bool
	reason   game.EndReason
}

// advanceMonth runs the master time step: income, bills and inflation,
// market roll, IPO listings, soft decay, game-over check, and the
// contextual character triggers. Ordering is load-bearing.
func (e *Engine) advanceMonth(tx *persistence.Tx, sess *game.Session) (*advanceResult, error) {
	sess.CurrentMonth++
	e.refreshLevel(sess)

	report := []string{fmt.Sprintf("Month %d started.", sess.CurrentMonth)}

	// Income.
	sources, err := tx.IncomeSources(sess.ID)
	if err != nil {
		return nil, err
	}
	totalIncome := 0
	for _, src := range sources {
		amount := src.AmountBase
		if src.SourceType == game.IncomeFreelance {
			if entropy.Chance(e.rng, e.cfg.FreelanceMissProb) {
				report = append(report, "No freelance gig this month.")
				continue
			}
			amount = int(float64(src.AmountBase) * entropy.Uniform(e.rng, 0.8, 1.2))
		}
		if amount > 0 {
			totalIncome += amount
			report = append(report, fmt.Sprintf("+₹%s from %s.", humanize.Comma(int64(amount)), strings.ToLower(src.SourceType)))
		}
	}
	if len(sources) == 0 {
		totalIncome = e.cfg.MonthlySalary
		report = append(report, fmt.Sprintf("+₹%s salary credited.", humanize.Comma(int64(totalIncome))))
	}
	sess.Wealth += totalIncome

	// Bills and annual inflation (months 13, 25, 37, 49).
	expenses, err := tx.ActiveExpenses(sess.ID)
	if err != nil {
		return nil, err
	}
	applyInflation := sess.CurrentMonth > 1 && sess.CurrentMonth%12 == 1
	drain := 0
	for _, exp := range expenses {
		if applyInflation && exp.InflationRate > 0 {
			newAmount := int(float64(exp.Amount) * (1 + exp.InflationRate))
			if err := tx.UpdateExpenseAmount(exp.ID, newAmount); err != nil {
				return nil, err
			}
			report = append(report, fmt.Sprintf("%s rose to ₹%s (+%.0f%%).",
				exp.Name, humanize.Comma(int64(newAmount)), exp.InflationRate*100))
			exp.Amount = newAmount
		}
		drain += exp.Amount
	}
	sess.Wealth -= drain
	sess.RecurringExpenses = drain
	report = append(report, fmt.Sprintf("-₹%s total bills paid.", humanize.Comma(int64(drain))))

	// Market roll.
	monthPrices, err := tx.StockPricesForMonth(sess.ID, sess.CurrentMonth)
	if err != nil {
		return nil, err
	}
	if news := e.market.Roll(sess, monthPrices, sessionSeed(sess.ID)); len(news) > 0 {
		report = append(report, "Market update: "+strings.Join(news, ", ")+".")
	}

	// IPO listings: anything applied before this month resolves now.
	var pending []game.IPOApplication
	for _, app := range sess.ActiveIPOs {
		if app.Status != "APPLIED" || app.Month >= sess.CurrentMonth {
			pending = append(pending, app)
			continue
		}
		_, listing, ok := e.cfg.IPOByName(app.Name)
		if !ok {
			pending = append(pending, app)
			continue
		}
		outcome := e.market.ResolveListing(app, listing)
		sess.Wealth += outcome.Credited
		report = append(report, outcome.Line+".")
		appendLog(sess, "Month %d: %s", sess.CurrentMonth, outcome.Line)
	}
	sess.ActiveIPOs = pending

	// Soft decay.
	if sess.Wealth < e.cfg.StressWealthFloor {
		sess.AddHappiness(-2)
		report = append(report, "Financial stress is affecting your happiness (-2).")
	}
	if sess.Happiness > 90 {
		sess.AddHappiness(-1)
	}

	res := &advanceResult{}
	if over, reason := e.checkGameOver(sess); over {
		res.gameOver = true
		res.reason = reason
		report = append(report, fmt.Sprintf("GAME OVER: %s.", reason))
	} else {
		res.chatbot = e.characterTrigger(tx, sess)
		if res.chatbot != nil {
			report = append(report, fmt.Sprintf("%s: %s", strings.ToUpper(res.chatbot.Character), res.chatbot.Message))
		} else if msg := e.proactiveTrigger(sess); msg != "" {
			report = append(report, "Advisor: "+msg)
		}
	}

	res.report = strings.Join(report, " ")
	appendLog(sess, "Month %d: %s", sess.CurrentMonth, res.report)
	return res, nil
}

// characterTrigger evaluates the contextual characters in priority
// order and returns at most one message.
func (e *Engine) characterTrigger(tx *persistence.Tx, sess *game.Session) *advisor.CharacterMessage {
	expenses, err := tx.ActiveExpenses(sess.ID)
	if err != nil {
		return nil
	}
	debtEMI := 0
	for _, exp := range expenses {
		if exp.Category == game.CategoryDebt {
			debtEMI += exp.Amount
		}
	}

	netWorth := sess.NetWorth()
	var debtRatio float64
	switch {
	case netWorth > 0:
		debtRatio = float64(debtEMI) / float64(netWorth)
	case debtEMI > 0:
		debtRatio = 1
	}

	// 1. Debt crisis.
	if debtEMI > 0 && (debtRatio > e.cfg.DebtRatioTrigger || float64(debtEMI) > float64(sess.Wealth)*e.cfg.EMIWealthRatio) {
		msg := e.advisor.VasooliMessage()
		return &msg
	}

	// 2. Random scam.
	if sess.Wealth > e.cfg.IdleCashFloor && entropy.Chance(e.rng, 0.10) {
		msg := e.advisor.SundarMessage(sess.Wealth)
		return &msg
	}

	// 3. Idle cash with no holdings.
	portfolioEmpty := true
	for _, units := range sess.Portfolio {
		if units > 0 {
			portfolioEmpty = false
			break
		}
	}
	if sess.Wealth > e.cfg.BrokerWealthFloor && portfolioEmpty && len(sess.MutualFunds) == 0 {
		msg := e.advisor.HarshadMessage(sess.Wealth)
		return &msg
	}

	// 4. Business owner, or a sustained wealth drop.
	drop := float64(e.cfg.StartingWealth-sess.Wealth) / float64(e.cfg.StartingWealth)
	businessOwner := false
	if profile, err := tx.Profile(sess.UserID); err == nil {
		businessOwner = profile.CareerStage == game.CareerBusinessOwner
	}
	if businessOwner || drop > e.cfg.WealthDropTrigger {
		msg := e.advisor.JettaMessage()
		return &msg
	}
	return nil
}

// proactiveTrigger is the lower-priority advisor nudge.
func (e *Engine) proactiveTrigger(sess *game.Session) string {
	switch {
	case sess.Wealth < 5000:
		return e.advisor.ProactiveMessage(advisor.ProactiveCrisis, sess.Wealth)
	case sess.Wealth > 100000 && sess.CurrentMonth%6 == 0:
		return e.advisor.ProactiveMessage(advisor.ProactiveMilestone, sess.Wealth)
	case sess.Happiness < 30:
		return e.advisor.ProactiveMessage(advisor.ProactiveWarning, sess.Wealth)
	case sess.RecurringExpenses > e.cfg.MonthlySalary*6/10:
		return e.advisor.ProactiveMessage(advisor.ProactiveDanger, sess.Wealth)
	}
	return ""
}
