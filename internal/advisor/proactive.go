package advisor

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/arthneeti/arthneeti/internal/entropy"
)

// Proactive trigger kinds, lower priority than the character triggers.
const (
	ProactiveCrisis    = "CRISIS"
	ProactiveMilestone = "MILESTONE"
	ProactiveWarning   = "WARNING"
	ProactiveDanger    = "DANGER"
)

var proactiveLines = map[string][]string{
	ProactiveCrisis: {
		"Your savings are running on fumes (₹%s). Pause every non-essential spend and protect rent and groceries first.",
		"₹%s left. This is triage time: essentials only until the next salary lands.",
	},
	ProactiveMilestone: {
		"₹%s in the bank! Lovely. Now make the money work: is it diversified, or just sunbathing in savings?",
		"Crossed ₹%s — celebrate with something small, then raise your SIP instead of your lifestyle.",
	},
	ProactiveWarning: {
		"Your happiness is scraping the floor. Money is a tool, not the whole toolbox — budget something that brings you joy.",
		"All savings and no living burns people out. A small, planned treat is financially sensible.",
	},
	ProactiveDanger: {
		"Your fixed bills are eating most of your income. Audit the recurring list: something there isn't earning its keep.",
		"Recurring expenses above 60%% of income leave no room for shocks. Cut one subscription today.",
	},
}

// ProactiveMessage returns a canned nudge for the trigger kind, or ""
// for unknown kinds.
func (a *Advisor) ProactiveMessage(kind string, wealth int) string {
	lines, ok := proactiveLines[kind]
	if !ok {
		return ""
	}
	line := entropy.Pick(a.rng, lines)
	switch kind {
	case ProactiveCrisis, ProactiveMilestone:
		return fmt.Sprintf(line, humanize.Comma(int64(wealth)))
	default:
		return line
	}
}
