package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

// cardExpenseInflation is the inflation rate attached to expenses
// created by card choices.
const cardExpenseInflation = 0.04

// SubmitChoice resolves one card: applies the choice's impacts and
// side effects, records the play, advances the month when the card
// count crosses a boundary, and finalizes the game when an end
// condition fires.
func (e *Engine) SubmitChoice(ctx context.Context, userID, sessionID string, cardID, choiceID int64) (*Result, error) {
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

		card, err := e.cardByID(tx, sessionID, cardID)
		if err != nil {
			return err
		}
		choice, ok := card.Choice(choiceID)
		if !ok {
			return game.E(game.KindValidation, "choice does not belong to this card")
		}

		appendLog(sess, "Month %d: %s, chose %q. Impact: wealth %+d, happiness %+d, credit %+d, literacy %+d.",
			sess.CurrentMonth, card.Title, choice.Text,
			choice.WealthImpact, choice.HappinessImpact, choice.CreditImpact, choice.LiteracyImpact)

		sess.Wealth += choice.WealthImpact
		sess.AddHappiness(choice.HappinessImpact)
		sess.AddCredit(choice.CreditImpact)
		sess.AddLiteracy(choice.LiteracyImpact)

		var feedback []string
		if choice.Feedback != "" {
			feedback = append(feedback, choice.Feedback)
		}

		if choice.AddsExpense > 0 {
			name := choice.ExpenseName
			if name == "" {
				name = fmt.Sprintf("Expense from '%s'", card.Title)
			}
			exp := &game.RecurringExpense{
				SessionID:     sessionID,
				Name:          name,
				Amount:        choice.AddsExpense,
				Category:      game.CategoryLifestyle,
				InflationRate: cardExpenseInflation,
				StartedMonth:  sess.CurrentMonth,
			}
			if err := tx.InsertExpense(exp); err != nil {
				return err
			}
		}
		if choice.CancelsExpense != "" {
			cancelled, err := tx.CancelExpense(sessionID, choice.CancelsExpense, sess.CurrentMonth)
			if err != nil {
				return err
			}
			if cancelled {
				feedback = append(feedback, fmt.Sprintf("(Cancelled %s!)", choice.CancelsExpense))
			}
		}

		if card.MarketEvent != nil {
			lines := e.market.ApplyEventShock(sess, card.MarketEvent.Title, card.MarketEvent.SectorImpacts)
			feedback = append(feedback, "MARKET NEWS: "+strings.Join(lines, ", "))
			appendLog(sess, "Month %d: Market event: %s.", sess.CurrentMonth, card.MarketEvent.Title)
		}

		cid := choiceID
		if err := tx.InsertPlayLog(sessionID, cardID, &cid); err != nil {
			return err
		}

		count, err := tx.PlayLogCount(sessionID)
		if err != nil {
			return err
		}
		if newMonth := count/e.cfg.CardsPerMonth + 1; newMonth > sess.CurrentMonth {
			adv, err := e.advanceMonth(tx, sess)
			if err != nil {
				return err
			}
			res.MonthAdvanced = true
			res.Chatbot = adv.chatbot
			feedback = append(feedback, adv.report)
			if adv.gameOver {
				persona, err := e.finalize(ctx, tx, sess, adv.reason)
				if err != nil {
					return err
				}
				res.Session = sess
				res.Feedback = strings.Join(feedback, " ")
				res.GameOver = true
				res.GameOverReason = adv.reason
				res.FinalPersona = persona
				return tx.UpdateSession(sess)
			}
		}

		if over, reason := e.checkGameOver(sess); over {
			persona, err := e.finalize(ctx, tx, sess, reason)
			if err != nil {
				return err
			}
			res.GameOver = true
			res.GameOverReason = reason
			res.FinalPersona = persona
		}

		res.Session = sess
		res.Feedback = strings.Join(feedback, " ")
		return tx.UpdateSession(sess)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SkipCard records a skip with category-weighted penalties. A skip
// still counts toward the month's card quota.
func (e *Engine) SkipCard(ctx context.Context, userID, sessionID string, cardID int64) (*Result, error) {
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

		card, err := e.cardByID(tx, sessionID, cardID)
		if err != nil {
			return err
		}

		happinessLoss, creditLoss := 5, 5
		switch card.Category {
		case "EMERGENCY", "NEEDS":
			happinessLoss, creditLoss = 15, 20
		case "INVESTMENT":
			creditLoss = 10
		}

		appendLog(sess, "Month %d: Skipped %s. Penalty: happiness -%d, credit -%d.",
			sess.CurrentMonth, card.Title, happinessLoss, creditLoss)
		sess.AddHappiness(-happinessLoss)
		sess.AddCredit(-creditLoss)

		if err := tx.InsertPlayLog(sessionID, cardID, nil); err != nil {
			return err
		}

		count, err := tx.PlayLogCount(sessionID)
		if err != nil {
			return err
		}
		var feedback []string
		feedback = append(feedback, fmt.Sprintf("Skipped! Penalty: -%d Happiness, -%d Credit Score.", happinessLoss, creditLoss))

		if newMonth := count/e.cfg.CardsPerMonth + 1; newMonth > sess.CurrentMonth {
			adv, err := e.advanceMonth(tx, sess)
			if err != nil {
				return err
			}
			res.MonthAdvanced = true
			res.Chatbot = adv.chatbot
			feedback = append(feedback, adv.report)
			if adv.gameOver {
				persona, err := e.finalize(ctx, tx, sess, adv.reason)
				if err != nil {
					return err
				}
				res.GameOver = true
				res.GameOverReason = adv.reason
				res.FinalPersona = persona
			}
		}

		if !res.GameOver {
			if over, reason := e.checkGameOver(sess); over {
				persona, err := e.finalize(ctx, tx, sess, reason)
				if err != nil {
					return err
				}
				res.GameOver = true
				res.GameOverReason = reason
				res.FinalPersona = persona
			}
		}

		res.Session = sess
		res.Feedback = strings.Join(feedback, " ")
		return tx.UpdateSession(sess)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// LifelineHint reveals the recommended choice for a card.
type LifelineHint struct {
	ChoiceID       int64  `json:"choice_id"`
	Text           string `json:"text"`
	LifelinesLeft  int    `json:"lifelines_left"`
}

// UseLifeline spends one lifeline and reveals the card's recommended
// choice (falling back to the highest happiness impact).
func (e *Engine) UseLifeline(userID, sessionID string, cardID int64) (*LifelineHint, error) {
	mu := e.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	var hint *LifelineHint
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
		if sess.Lifelines <= 0 {
			return game.E(game.KindValidation, "no lifelines remaining")
		}

		card, err := e.cardByID(tx, sessionID, cardID)
		if err != nil {
			return err
		}

		sess.Lifelines--
		rec := card.Recommended()
		hint = &LifelineHint{ChoiceID: rec.ID, Text: rec.Text, LifelinesLeft: sess.Lifelines}
		appendLog(sess, "Month %d: Used a lifeline on %s.", sess.CurrentMonth, card.Title)
		return tx.UpdateSession(sess)
	})
	if err != nil {
		return nil, err
	}
	return hint, nil
}
