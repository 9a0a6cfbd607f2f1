// Package advisor produces player-facing guidance: contextual tips on
// the current card and scripted messages from the game's recurring
// characters. The LLM path is optional; the curated catalogue is the
// source of truth when it is off or fails.
package advisor

import (
	"context"
	"log/slog"

	"github.com/arthneeti/arthneeti/internal/entropy"
	"github.com/arthneeti/arthneeti/internal/llm"
)

// Advice is one tip with its provenance.
type Advice struct {
	Text   string `json:"text"`
	Source string `json:"source"` // "ai" or "curated"
}

// Advisor serves tips and character messages.
type Advisor struct {
	llm *llm.Client
	rng entropy.Source
}

// New builds an advisor. client may be nil.
func New(client *llm.Client, rng entropy.Source) *Advisor {
	return &Advisor{llm: client, rng: rng}
}

// Advise returns a tip for the current card. The LLM path is bounded
// by its own timeout; any failure falls back to the curated catalogue.
func (a *Advisor) Advise(ctx context.Context, title, description string, wealth, happiness int) Advice {
	if a.llm.Enabled() {
		text, err := a.llm.Advise(ctx, title, description, wealth, happiness)
		if err == nil && text != "" {
			return Advice{Text: text, Source: "ai"}
		}
		slog.Debug("ai advice failed, using curated", "error", err)
	}
	return Advice{Text: a.curated(title, description), Source: "curated"}
}
