package engine

import (
	"context"

	"github.com/arthneeti/arthneeti/internal/advisor"
	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

// GetAdvice returns a tip for the card the player is looking at.
// Read-only: the session is not mutated.
func (e *Engine) GetAdvice(ctx context.Context, userID, sessionID string, cardID int64) (*advisor.Advice, error) {
	var advice advisor.Advice
	err := e.store.WithTx(func(tx *persistence.Tx) error {
		sess, err := tx.GetSession(sessionID)
		if err != nil {
			return err
		}
		if sess.UserID != userID {
			return game.E(game.KindPermissionDenied, "session belongs to another user")
		}

		card, err := e.cardByID(tx, sessionID, cardID)
		if err != nil {
			return err
		}
		advice = e.advisor.Advise(ctx, card.Title, card.Description, sess.Wealth, sess.Happiness)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &advice, nil
}
