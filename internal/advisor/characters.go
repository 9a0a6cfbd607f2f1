package advisor

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/arthneeti/arthneeti/internal/entropy"
)

// Character names. Triggers for each live in the engine; the advisor
// only owns their voices.
const (
	CharacterVasooli = "vasooli" // recovery agent, appears under debt stress
	CharacterSundar  = "sundar"  // smooth-talking scammer
	CharacterHarshad = "harshad" // pushy broker
	CharacterJetta   = "jetta"   // business mentor
)

// CharacterMessage is one scripted interjection. Scam messages carry
// the amount at stake so the engine can resolve the player's answer.
type CharacterMessage struct {
	Character  string `json:"character"`
	Message    string `json:"message"`
	IsScam     bool   `json:"is_scam"`
	ScamAmount int    `json:"scam_amount,omitempty"`
}

var vasooliLines = []string{
	"Vasooli bhai here. Your EMIs are eating your salary alive. Clear the high-interest one first, or I'll be visiting every month.",
	"Boss, your debt is running faster than your income. Stop swiping and start repaying — principal, not minimums.",
}

var harshadLines = []string{
	"Harshad here! ₹%s just sitting in savings? Inflation is quietly taxing it. Even a boring index fund would put it to work.",
	"Arre, cash is a melting ice cube! With ₹%s idle you could start a small SIP and let compounding do the heavy lifting.",
}

var jettaLines = []string{
	"Jetta uncle speaking. Your wealth took a hit this month. Breathe. Review what changed, cut one leak, and protect the essentials first.",
	"Rough month, beta. Every business has bad quarters. Rebuild the buffer before you chase returns again.",
}

var sundarPitches = []string{
	"Sundar here, my friend! A once-in-a-lifetime chit fund is closing today. Put in ₹%s and I personally guarantee it doubles in 18 months. Shall I reserve your slot?",
	"My dear friend, Sundar speaking! A pre-IPO allotment, only for insiders. ₹%s today becomes ₹%s by Diwali. But you must transfer now. Are you in?",
}

// VasooliMessage is the debt-stress interjection.
func (a *Advisor) VasooliMessage() CharacterMessage {
	return CharacterMessage{Character: CharacterVasooli, Message: entropy.Pick(a.rng, vasooliLines)}
}

// HarshadMessage nudges idle cash toward the market.
func (a *Advisor) HarshadMessage(wealth int) CharacterMessage {
	line := entropy.Pick(a.rng, harshadLines)
	return CharacterMessage{
		Character: CharacterHarshad,
		Message:   fmt.Sprintf(line, humanize.Comma(int64(wealth))),
	}
}

// JettaMessage consoles after a wealth drop.
func (a *Advisor) JettaMessage() CharacterMessage {
	return CharacterMessage{Character: CharacterJetta, Message: entropy.Pick(a.rng, jettaLines)}
}

// SundarMessage builds a scam pitch sized to the player's wealth:
// a quarter of savings, floored to ₹500 steps, at least ₹5,000.
func (a *Advisor) SundarMessage(wealth int) CharacterMessage {
	amount := wealth / 4
	amount -= amount % 500
	if amount < 5000 {
		amount = 5000
	}
	pitch := entropy.Pick(a.rng, sundarPitches)
	var msg string
	if pitch == sundarPitches[1] {
		msg = fmt.Sprintf(pitch, humanize.Comma(int64(amount)), humanize.Comma(int64(amount*3)))
	} else {
		msg = fmt.Sprintf(pitch, humanize.Comma(int64(amount)))
	}
	return CharacterMessage{
		Character:  CharacterSundar,
		Message:    msg,
		IsScam:     true,
		ScamAmount: amount,
	}
}
