package advisor

import (
	"strings"

	"github.com/arthneeti/arthneeti/internal/entropy"
)

// adviceBucket routes a scenario to a tip pool by keyword. Buckets are
// checked in order; the first hit wins.
type adviceBucket struct {
	keywords []string
	tips     []string
}

var adviceBuckets = []adviceBucket{
	{
		keywords: []string{"friend", "party", "wedding", "festival", "celebration", "farewell"},
		tips: []string{
			"Set a fixed 'celebrations' budget each month. Joy is important, but it should have a line item.",
			"For weddings and festivals, decide the total spend before you leave home, not at the venue.",
			"Social spending compounds quietly. ₹2,000 a month on outings is ₹24,000 a year.",
			"You can honour a relationship without matching anyone else's spending. Presence beats presents.",
		},
	},
	{
		keywords: []string{"sale", "discount", "offer", "deal", "shopping", "cart"},
		tips: []string{
			"A discount on something you didn't need is still an expense, not a saving.",
			"Use the 48-hour rule: leave it in the cart for two days. Most urges don't survive the wait.",
			"Ask what the item costs in hours of your salary, not rupees. It reframes everything.",
			"Sales are designed around urgency. Real needs are rarely urgent.",
		},
	},
	{
		keywords: []string{"investment", "mutual fund", "stock", "sip", "fd", "deposit", "ipo", "portfolio", "gold"},
		tips: []string{
			"Start small and stay consistent. A ₹500 monthly SIP beats a ₹6,000 annual panic.",
			"Never invest in anything you can't explain to a friend in two sentences.",
			"Diversification is the only free lunch: spread across assets that don't move together.",
			"Past returns are marketing. Costs and discipline are what you actually control.",
		},
	},
	{
		keywords: []string{"loan", "emi", "credit", "borrow", "debt", "settlement", "minimum due"},
		tips: []string{
			"Pay credit card statements in full. The 'minimum due' is an interest trap near 40% a year.",
			"Good debt builds assets; bad debt funds lifestyle. Know which one you're signing for.",
			"Keep all EMIs together under 40% of take-home pay, or the budget stops being yours.",
			"Prepaying a high-interest loan is a guaranteed, tax-free return. Few investments beat it.",
		},
	},
	{
		keywords: []string{"emergency", "hospital", "accident", "repair", "urgent", "breakdown"},
		tips: []string{
			"An emergency fund of 3-6 months of expenses turns a crisis into an inconvenience.",
			"Pay for genuine emergencies from savings, not a credit card you can't clear next month.",
			"After the emergency passes, rebuild the buffer before resuming discretionary spends.",
		},
	},
	{
		keywords: []string{"phone", "gadget", "laptop", "electronics", "upgrade"},
		tips: []string{
			"Gadgets lose value the day you unbox them. Buy for need, not for launch-day excitement.",
			"'No-cost EMI' is rarely free: the interest hides in the price or a processing fee.",
			"A one-year-old flagship does 95% of the job at 60% of the price.",
		},
	},
	{
		keywords: []string{"insurance", "policy", "term", "health", "premium"},
		tips: []string{
			"Term life and health insurance first; investment-linked policies mix two jobs and do both badly.",
			"Insurance is bought for the worst day of your life. Don't judge it by the premium on a good day.",
			"One hospital stay can undo five years of savings. The premium is the cheap part.",
		},
	},
}

var genericTips = []string{
	"Track every rupee for one month. What gets measured gets managed.",
	"Pay yourself first: move savings out on salary day, then spend what's left.",
	"The best financial decision is usually the boring one.",
	"Small consistent habits beat big occasional resolutions.",
}

// curated picks a tip for the card by keyword routing over its title
// and description.
func (a *Advisor) curated(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, b := range adviceBuckets {
		for _, kw := range b.keywords {
			if strings.Contains(text, kw) {
				return entropy.Pick(a.rng, b.tips)
			}
		}
	}
	return entropy.Pick(a.rng, genericTips)
}
