package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arthneeti/arthneeti/internal/deck"
)

const scenarioTimeout = 3 * time.Second

const scenarioSystem = `You write scenario cards for an Indian personal-finance
simulation game. The player is a young salaried professional in an Indian
metro. Amounts are in whole rupees. Respond with a single JSON object:
{"title": "...", "description": "...", "choices": [{"text": "...",
"wealth_impact": 0, "happiness_impact": 0, "credit_impact": 0,
"literacy_impact": 0, "feedback": "...", "is_recommended": false}]}
Give 2 or 3 choices, exactly one with is_recommended true. Keep
wealth impacts between -20000 and 5000, happiness and credit impacts
between -20 and 20, literacy impacts between -5 and 10.`

// GenerateScenario asks the model for a fresh card in the given
// category, tuned to the player's situation. The returned card has no
// ID; the caller assigns one from the generated namespace.
func (c *Client) GenerateScenario(ctx context.Context, category string, month, wealth, literacy int) (*deck.Card, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("llm disabled")
	}

	prompt := fmt.Sprintf(
		"Write one %s card. The player is in month %d with savings of ₹%d and a financial literacy score of %d. Make the dilemma concrete and Indian in flavour.",
		category, month, wealth, literacy)

	raw, err := c.generate(ctx, scenarioSystem, prompt, true, scenarioTimeout)
	if err != nil {
		return nil, err
	}
	obj, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Choices     []struct {
			Text            string `json:"text"`
			WealthImpact    int    `json:"wealth_impact"`
			HappinessImpact int    `json:"happiness_impact"`
			CreditImpact    int    `json:"credit_impact"`
			LiteracyImpact  int    `json:"literacy_impact"`
			Feedback        string `json:"feedback"`
			IsRecommended   bool   `json:"is_recommended"`
		} `json:"choices"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if parsed.Title == "" || len(parsed.Choices) < 2 || len(parsed.Choices) > 4 {
		return nil, fmt.Errorf("malformed scenario: %q with %d choices", parsed.Title, len(parsed.Choices))
	}

	card := &deck.Card{
		Title:       parsed.Title,
		Description: parsed.Description,
		Category:    category,
		Difficulty:  3,
		MinMonth:    month,
		IsGenerated: true,
	}
	for _, ch := range parsed.Choices {
		if ch.Text == "" {
			return nil, fmt.Errorf("malformed scenario: empty choice text")
		}
		card.Choices = append(card.Choices, deck.Choice{
			Text:            ch.Text,
			WealthImpact:    clampInt(ch.WealthImpact, -20000, 5000),
			HappinessImpact: clampInt(ch.HappinessImpact, -20, 20),
			CreditImpact:    clampInt(ch.CreditImpact, -20, 20),
			LiteracyImpact:  clampInt(ch.LiteracyImpact, -5, 10),
			Feedback:        ch.Feedback,
			IsRecommended:   ch.IsRecommended,
		})
	}
	return card, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
