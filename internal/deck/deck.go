// Package deck holds the scenario card catalogue: the built-in
// handcrafted cards, their choices, and the market events some of
// them carry.
package deck

import "encoding/json"

// Card categories.
const (
	CategoryNeeds      = "NEEDS"
	CategoryWants      = "WANTS"
	CategoryEmergency  = "EMERGENCY"
	CategorySocial     = "SOCIAL"
	CategoryDebt       = "DEBT"
	CategoryShopping   = "SHOPPING"
	CategoryInvestment = "INVESTMENT"
	CategoryNews       = "NEWS"
	CategoryQuiz       = "QUIZ"
	CategoryTrap       = "TRAP"
)

// GeneratedIDBase separates AI-generated card IDs from the built-in
// catalogue's ID space.
const GeneratedIDBase int64 = 1_000_000

// Choice is one option on a card. Impacts apply to the session's four
// stats; the expense fields create or cancel recurring expenses as a
// side effect.
type Choice struct {
	ID              int64  `json:"id"`
	Text            string `json:"text"`
	WealthImpact    int    `json:"wealth_impact"`
	HappinessImpact int    `json:"happiness_impact"`
	CreditImpact    int    `json:"credit_impact"`
	LiteracyImpact  int    `json:"literacy_impact"`
	Feedback        string `json:"feedback"`
	IsRecommended   bool   `json:"is_recommended"`

	// AddsExpense creates a recurring LIFESTYLE expense of this amount
	// named ExpenseName when > 0.
	AddsExpense int    `json:"adds_expense,omitempty"`
	ExpenseName string `json:"expense_name,omitempty"`
	// CancelsExpense soft-deletes the named active expense.
	CancelsExpense string `json:"cancels_expense,omitempty"`
}

// MarketEvent is an intra-month shock carried by a NEWS card. The
// multipliers apply to sector spot prices the moment the card is
// answered.
type MarketEvent struct {
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	SectorImpacts map[string]float64 `json:"sector_impacts"`
}

// Card is one scenario. Generated cards carry IsGenerated and live in
// the per-session store, not the catalogue.
type Card struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Difficulty  int          `json:"difficulty"`
	MinMonth    int          `json:"min_month"`
	IsGenerated bool         `json:"is_generated"`
	MarketEvent *MarketEvent `json:"market_event,omitempty"`
	Choices     []Choice     `json:"choices"`
}

// Choice finds a choice on the card by ID.
func (c *Card) Choice(id int64) (Choice, bool) {
	for _, ch := range c.Choices {
		if ch.ID == id {
			return ch, true
		}
	}
	return Choice{}, false
}

// Recommended returns the recommended choice, or the one with the
// highest happiness impact when none is flagged.
func (c *Card) Recommended() Choice {
	for _, ch := range c.Choices {
		if ch.IsRecommended {
			return ch
		}
	}
	best := c.Choices[0]
	for _, ch := range c.Choices[1:] {
		if ch.HappinessImpact > best.HappinessImpact {
			best = ch
		}
	}
	return best
}

// Deck is an immutable card catalogue with ID lookup.
type Deck struct {
	cards []Card
	byID  map[int64]*Card
}

// New builds a deck from a card list. Cards keep catalogue order.
func New(cards []Card) *Deck {
	d := &Deck{cards: cards, byID: make(map[int64]*Card, len(cards))}
	for i := range d.cards {
		d.byID[d.cards[i].ID] = &d.cards[i]
	}
	return d
}

// Builtin returns the shipped catalogue.
func Builtin() *Deck {
	return New(builtinCards())
}

// Get looks up a card by ID.
func (d *Deck) Get(id int64) (*Card, bool) {
	c, ok := d.byID[id]
	return c, ok
}

// Cards returns the catalogue in order. Callers must not mutate.
func (d *Deck) Cards() []Card {
	return d.cards
}

// Filter returns the cards matching the predicate.
func (d *Deck) Filter(keep func(*Card) bool) []*Card {
	var out []*Card
	for i := range d.cards {
		if keep(&d.cards[i]) {
			out = append(out, &d.cards[i])
		}
	}
	return out
}

// Marshal round-trips a generated card through JSON for the
// per-session store.
func Marshal(c *Card) ([]byte, error) {
	return json.Marshal(c)
}

// Unmarshal decodes a stored generated card.
func Unmarshal(data []byte) (*Card, error) {
	var c Card
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
