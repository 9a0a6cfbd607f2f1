package engine

import (
	"context"
	"log/slog"

	"github.com/arthneeti/arthneeti/internal/config"
	"github.com/arthneeti/arthneeti/internal/deck"
	"github.com/arthneeti/arthneeti/internal/entropy"
	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

// NextCard deals the next scenario card for the session. With the
// generator wired there is a 30% chance of a fresh AI card; otherwise
// (and on any generation failure) the built-in catalogue is filtered
// by level, month, and seen-state, relaxing constraints until a card
// is found.
func (e *Engine) NextCard(ctx context.Context, userID, sessionID string) (*deck.Card, error) {
	mu := e.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	var card *deck.Card
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

		filter := e.cfg.FilterFor(sess.CurrentLevel)

		if e.scenarios != nil && entropy.Chance(e.rng, e.cfg.ScenarioGenerateOdds) {
			category := deck.CategoryWants
			if len(filter.Categories) > 0 {
				category = entropy.Pick(e.rng, filter.Categories)
			}
			gen, err := e.scenarios.GenerateScenario(ctx, category, sess.CurrentMonth, sess.Wealth, sess.FinancialLiteracy)
			if err == nil && gen != nil {
				if _, err := tx.InsertGeneratedCard(sessionID, gen); err != nil {
					return err
				}
				card = gen
				return nil
			}
			slog.Debug("scenario generation failed, using catalogue", "error", err)
		}

		seen, err := tx.ShownCardIDs(sessionID)
		if err != nil {
			return err
		}
		card = e.selectCard(sess, filter, seen)
		if card == nil {
			return game.E(game.KindInternal, "card catalogue exhausted")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// selectCard filters the catalogue for the session, relaxing
// constraints in order: category first, then difficulty, then the
// unseen requirement.
func (e *Engine) selectCard(sess *game.Session, filter config.LevelFilter, seen map[int64]bool) *deck.Card {
	allowed := map[string]bool{}
	for _, c := range filter.Categories {
		allowed[c] = true
	}

	type constraints struct {
		category   bool
		difficulty bool
		unseen     bool
	}
	relaxations := []constraints{
		{category: true, difficulty: true, unseen: true},
		{category: false, difficulty: true, unseen: true},
		{category: false, difficulty: false, unseen: true},
		{category: false, difficulty: false, unseen: false},
	}

	for _, c := range relaxations {
		candidates := e.deck.Filter(func(card *deck.Card) bool {
			if card.MinMonth > sess.CurrentMonth {
				return false
			}
			if c.category && len(allowed) > 0 && !allowed[card.Category] {
				return false
			}
			if c.difficulty && card.Difficulty > filter.MaxDifficulty {
				return false
			}
			if c.unseen && seen[card.ID] {
				return false
			}
			return true
		})
		if len(candidates) > 0 {
			return entropy.Pick(e.rng, candidates)
		}
	}
	return nil
}

// cardByID resolves a card from the catalogue or the session's
// generated store.
func (e *Engine) cardByID(tx *persistence.Tx, sessionID string, cardID int64) (*deck.Card, error) {
	if cardID >= deck.GeneratedIDBase {
		return tx.GeneratedCard(sessionID, cardID)
	}
	card, ok := e.deck.Get(cardID)
	if !ok {
		return nil, game.E(game.KindNotFound, "card not found")
	}
	return card, nil
}
