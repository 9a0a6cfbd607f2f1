package llm

import (
	"context"
	"fmt"
	"time"
)

const reportTimeout = 10 * time.Second

const reportSystem = `You are a warm, practical financial coach reviewing a
finished playthrough of a personal-finance simulation game. Write Markdown
with exactly these four sections: "## Summary", "## Highlights",
"## Risks", "## Recommendations". Be specific to the player's journey,
keep it under 400 words, and never invent numbers not present in the log.`

// RenderReport asks the model for the end-of-game Markdown report.
func (c *Client) RenderReport(ctx context.Context, gameplayLog string, wealth, happiness, credit, literacy int, endReason string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("llm disabled")
	}

	prompt := fmt.Sprintf(`The game ended with reason %s.
Final stats: wealth ₹%d, happiness %d/100, credit score %d, financial literacy %d.

Gameplay log:
%s`, endReason, wealth, happiness, credit, literacy, gameplayLog)

	return c.generate(ctx, reportSystem, prompt, false, reportTimeout)
}

const adviceTimeout = 3 * time.Second

const adviceSystem = `You are a friendly Indian financial-literacy coach inside
a game. Give one short, concrete tip (2-3 sentences) about the scenario the
player is facing. No preamble, no markdown, rupee amounts where helpful.`

// Advise asks the model for a contextual tip on the current card.
func (c *Client) Advise(ctx context.Context, title, description string, wealth, happiness int) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("llm disabled")
	}

	prompt := fmt.Sprintf("Scenario: %s - %s\nPlayer savings: ₹%d, happiness %d/100.",
		title, description, wealth, happiness)

	return c.generate(ctx, adviceSystem, prompt, false, adviceTimeout)
}
