package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

// Loan types.
const (
	LoanFamily     = "FAMILY"
	LoanInstantApp = "INSTANT_APP"
)

// TakeLoan credits a loan to the session. FAMILY loans are interest
// free but carry a happiness cost and a wealth cap; INSTANT_APP loans
// attach a permanent high-interest EMI.
func (e *Engine) TakeLoan(userID, sessionID, loanType string) (*Result, error) {
	var feedback string
	sess, err := e.withSession(sessionID, userID, true, func(tx *persistence.Tx, sess *game.Session) error {
		e.refreshLevel(sess)
		if sess.CurrentLevel < e.cfg.Unlocks.Loans {
			return game.E(game.KindGated, "loans unlock at level %d", e.cfg.Unlocks.Loans)
		}

		switch strings.ToUpper(loanType) {
		case LoanFamily:
			if sess.Wealth+e.cfg.FamilyLoanAmount > e.cfg.FamilyLoanWealthCap {
				return game.E(game.KindValidation, "family won't lend when you already have ₹%s", humanize.Comma(int64(sess.Wealth)))
			}
			sess.Wealth += e.cfg.FamilyLoanAmount
			sess.AddHappiness(-e.cfg.FamilyLoanHappyCost)
			appendLog(sess, "Month %d: Borrowed ₹%s from family.",
				sess.CurrentMonth, humanize.Comma(int64(e.cfg.FamilyLoanAmount)))
			feedback = fmt.Sprintf("Family lent you ₹%s. It comes with a side of guilt (-%d happiness).",
				humanize.Comma(int64(e.cfg.FamilyLoanAmount)), e.cfg.FamilyLoanHappyCost)

		case LoanInstantApp:
			limit := sess.CreditScore * e.cfg.CreditLimitPerPoint
			if e.cfg.InstantLoanAmount > limit {
				return game.E(game.KindGated, "loan app declined: ₹%s exceeds your credit limit of ₹%s",
					humanize.Comma(int64(e.cfg.InstantLoanAmount)), humanize.Comma(int64(limit)))
			}
			sess.Wealth += e.cfg.InstantLoanAmount
			sess.AddCredit(-e.cfg.InstantLoanCredit)
			sess.AddHappiness(e.cfg.InstantLoanHappiness)
			if err := tx.InsertExpense(&game.RecurringExpense{
				SessionID:    sessionID,
				Name:         "High Interest Loan EMI",
				Amount:       e.cfg.InstantLoanEMI,
				Category:     game.CategoryDebt,
				IsEssential:  true,
				StartedMonth: sess.CurrentMonth,
			}); err != nil {
				return err
			}
			sess.RecurringExpenses += e.cfg.InstantLoanEMI
			appendLog(sess, "Month %d: Took an instant app loan of ₹%s (EMI ₹%d/month).",
				sess.CurrentMonth, humanize.Comma(int64(e.cfg.InstantLoanAmount)), e.cfg.InstantLoanEMI)
			feedback = fmt.Sprintf("₹%s credited instantly! A ₹%d monthly EMI now follows you around, and your credit score took a -%d hit.",
				humanize.Comma(int64(e.cfg.InstantLoanAmount)), e.cfg.InstantLoanEMI, e.cfg.InstantLoanCredit)

		default:
			return game.E(game.KindValidation, "unknown loan type %q", loanType)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Session: sess, Feedback: feedback}, nil
}

// ProcessScamChoice resolves a character scam offer. Accepting costs
// money, happiness, and literacy, and can bankrupt the session on the
// spot; declining is a literacy lesson.
func (e *Engine) ProcessScamChoice(ctx context.Context, userID, sessionID string, accepted bool, amount int) (*Result, error) {
	mu := e.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	res := &Result{}
	err := e.store.WithTx(func(tx *persistence.Tx) error {
		sess, err := tx.GetSession(sessionID)
		if err != nil {
			return err
		}
		if sess.UserID != userID {
			return game.E(game.KindPermissionDenied, "session belongs to another user")
		}
		if !sess.IsActive {
			return game.E(game.KindValidation, "session is not active")
		}
		if amount <= 0 {
			return game.E(game.KindValidation, "scam amount must be positive")
		}

		if accepted {
			sess.Wealth -= amount
			sess.AddHappiness(-15)
			sess.AddLiteracy(-5)
			appendLog(sess, "Month %d: Fell for a scam and lost ₹%s.",
				sess.CurrentMonth, humanize.Comma(int64(amount)))
			res.Feedback = fmt.Sprintf("Scammed! ₹%s gone. An expensive lesson (-15 happiness, -5 literacy).",
				humanize.Comma(int64(amount)))

			if over, reason := e.checkGameOver(sess); over {
				persona, err := e.finalize(ctx, tx, sess, reason)
				if err != nil {
					return err
				}
				res.GameOver = true
				res.GameOverReason = reason
				res.FinalPersona = persona
			}
		} else {
			sess.AddLiteracy(5)
			appendLog(sess, "Month %d: Spotted and declined a scam.", sess.CurrentMonth)
			res.Feedback = "Scam dodged! Your instincts just earned you +5 financial literacy."
		}

		res.Session = sess
		return tx.UpdateSession(sess)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
