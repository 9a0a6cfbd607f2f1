package engine

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

// fundDust is the threshold under which a fund holding is deleted
// after a sale.
const fundDust = 0.01

// BuyStock buys fractional units of a sector for a rupee amount.
func (e *Engine) BuyStock(userID, sessionID, sector string, amount int) (*Result, error) {
	var feedback string
	sess, err := e.withSession(sessionID, userID, true, func(tx *persistence.Tx, sess *game.Session) error {
		e.refreshLevel(sess)
		if sess.CurrentLevel < e.cfg.Unlocks.Investing {
			return game.E(game.KindGated, "investing unlocks at level %d", e.cfg.Unlocks.Investing)
		}
		if !e.cfg.ValidSector(sector) {
			return game.E(game.KindValidation, "invalid sector %q", sector)
		}
		if sess.CurrentLevel < e.cfg.Unlocks.Diversification {
			for held, units := range sess.Portfolio {
				if held != sector && units > 0 {
					return game.E(game.KindGated, "diversification unlocks at level %d; stick to one sector for now", e.cfg.Unlocks.Diversification)
				}
			}
		}
		if amount <= 0 {
			return game.E(game.KindValidation, "amount must be positive")
		}
		if amount > sess.Wealth {
			return game.E(game.KindInsufficientFunds, "insufficient funds")
		}

		price := sess.MarketPrices[sector]
		if price <= 0 {
			return game.E(game.KindInternal, "no price for sector %q", sector)
		}
		units := float64(amount) / price

		sess.Wealth -= amount
		sess.Portfolio[sector] += units
		sess.PurchaseHistory = append(sess.PurchaseHistory, game.TradeRecord{
			Sector: sector, Units: units, Price: price, Month: sess.CurrentMonth,
		})
		appendLog(sess, "Month %d: Bought %.2f units of %s at ₹%s.",
			sess.CurrentMonth, units, sector, humanize.Commaf(price))
		feedback = fmt.Sprintf("Bought %.2f units of %s at ₹%s.", units, sector, humanize.Commaf(price))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Session: sess, Feedback: feedback}, nil
}

// SellStock sells fractional units at the current spot, crediting the
// floored proceeds.
func (e *Engine) SellStock(userID, sessionID, sector string, units float64) (*Result, error) {
	var feedback string
	sess, err := e.withSession(sessionID, userID, true, func(tx *persistence.Tx, sess *game.Session) error {
		if !e.cfg.ValidSector(sector) {
			return game.E(game.KindValidation, "invalid sector %q", sector)
		}
		if units <= 0 {
			return game.E(game.KindValidation, "units must be positive")
		}
		owned := sess.Portfolio[sector]
		if units > owned {
			return game.E(game.KindInsufficientUnits, "you hold only %.2f units of %s", owned, sector)
		}

		price := sess.MarketPrices[sector]
		proceeds := int(math.Floor(units * price))
		sess.Wealth += proceeds
		sess.Portfolio[sector] = owned - units
		appendLog(sess, "Month %d: Sold %.2f units of %s for ₹%s.",
			sess.CurrentMonth, units, sector, humanize.Comma(int64(proceeds)))
		feedback = fmt.Sprintf("Sold %.2f units of %s for ₹%s.", units, sector, humanize.Comma(int64(proceeds)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Session: sess, Feedback: feedback}, nil
}

// BuyMutualFund invests a rupee amount into a fund at the current NAV.
func (e *Engine) BuyMutualFund(userID, sessionID, fund string, amount int) (*Result, error) {
	var feedback string
	sess, err := e.withSession(sessionID, userID, true, func(tx *persistence.Tx, sess *game.Session) error {
		e.refreshLevel(sess)
		if sess.CurrentLevel < e.cfg.Unlocks.Investing {
			return game.E(game.KindGated, "investing unlocks at level %d", e.cfg.Unlocks.Investing)
		}
		if _, ok := e.cfg.MutualFunds[fund]; !ok {
			return game.E(game.KindValidation, "unknown fund %q", fund)
		}
		if amount < e.cfg.MinFundBuy {
			return game.E(game.KindValidation, "minimum fund investment is ₹%d", e.cfg.MinFundBuy)
		}
		if amount > sess.Wealth {
			return game.E(game.KindInsufficientFunds, "insufficient funds")
		}

		nav := sess.MarketPrices["MF_"+fund]
		if nav <= 0 {
			nav = e.cfg.FundStartNAV
			sess.MarketPrices["MF_"+fund] = nav
		}
		units := float64(amount) / nav

		holding := sess.MutualFunds[fund]
		holding.Units += units
		holding.Invested += float64(amount)
		sess.MutualFunds[fund] = holding
		sess.Wealth -= amount

		appendLog(sess, "Month %d: Invested ₹%s in %s fund (%.2f units).",
			sess.CurrentMonth, humanize.Comma(int64(amount)), fund, units)
		feedback = fmt.Sprintf("Invested ₹%s in %s (%.2f units at NAV %.2f).",
			humanize.Comma(int64(amount)), fund, units, nav)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Session: sess, Feedback: feedback}, nil
}

// SellMutualFund redeems units at the current NAV, prorating the cost
// basis and deleting dust positions.
func (e *Engine) SellMutualFund(userID, sessionID, fund string, units float64) (*Result, error) {
	var feedback string
	sess, err := e.withSession(sessionID, userID, true, func(tx *persistence.Tx, sess *game.Session) error {
		holding, ok := sess.MutualFunds[fund]
		if !ok {
			return game.E(game.KindNotFound, "no holding in fund %q", fund)
		}
		if units <= 0 {
			return game.E(game.KindValidation, "units must be positive")
		}
		if units > holding.Units {
			return game.E(game.KindInsufficientUnits, "you hold only %.2f units of %s", holding.Units, fund)
		}

		nav := sess.MarketPrices["MF_"+fund]
		proceeds := int(math.Floor(units * nav))
		remaining := holding.Units - units
		if holding.Units > 0 {
			holding.Invested *= remaining / holding.Units
		}
		holding.Units = remaining
		if remaining < fundDust {
			delete(sess.MutualFunds, fund)
		} else {
			sess.MutualFunds[fund] = holding
		}
		sess.Wealth += proceeds

		appendLog(sess, "Month %d: Redeemed %.2f units of %s for ₹%s.",
			sess.CurrentMonth, units, fund, humanize.Comma(int64(proceeds)))
		feedback = fmt.Sprintf("Redeemed %.2f units of %s for ₹%s.", units, fund, humanize.Comma(int64(proceeds)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Session: sess, Feedback: feedback}, nil
}

// SellFutures cashes out a short futures position at the discounted
// contract price. The contract is recorded but never settles.
func (e *Engine) SellFutures(userID, sessionID, sector string, units float64, durationMonths int) (*Result, error) {
	var feedback string
	sess, err := e.withSession(sessionID, userID, true, func(tx *persistence.Tx, sess *game.Session) error {
		e.refreshLevel(sess)
		if sess.CurrentLevel < e.cfg.Unlocks.Mastery {
			return game.E(game.KindGated, "futures unlock at level %d", e.cfg.Unlocks.Mastery)
		}
		if !e.cfg.ValidSector(sector) {
			return game.E(game.KindValidation, "invalid sector %q", sector)
		}
		if durationMonths < 1 || durationMonths > e.cfg.MaxFuturesMonths {
			return game.E(game.KindValidation, "duration must be between 1 and %d months", e.cfg.MaxFuturesMonths)
		}
		if units <= 0 {
			return game.E(game.KindValidation, "units must be positive")
		}
		owned := sess.Portfolio[sector]
		if units > owned {
			return game.E(game.KindInsufficientUnits, "you hold only %.2f units of %s", owned, sector)
		}

		spot := sess.MarketPrices[sector]
		contract := e.market.FuturesQuote(spot, durationMonths)
		payout := int(math.Floor(contract * units))

		sess.Portfolio[sector] = owned - units
		sess.Wealth += payout

		if err := tx.InsertFutures(&game.FuturesContract{
			SessionID:      sessionID,
			Sector:         sector,
			Units:          units,
			ContractPrice:  contract,
			SpotAtSale:     spot,
			DurationMonths: durationMonths,
			CreatedMonth:   sess.CurrentMonth,
		}); err != nil {
			return err
		}

		appendLog(sess, "Month %d: Sold %.2f %s futures (%dm) at ₹%s for ₹%s.",
			sess.CurrentMonth, units, sector, durationMonths,
			humanize.Commaf(contract), humanize.Comma(int64(payout)))
		feedback = fmt.Sprintf("Sold %.2f %s futures at contract price ₹%s for ₹%s.",
			units, sector, humanize.Commaf(contract), humanize.Comma(int64(payout)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Session: sess, Feedback: feedback}, nil
}

// ApplyForIPO places a bid in a scheduled IPO during its open month.
func (e *Engine) ApplyForIPO(userID, sessionID, name string, amount int) (*Result, error) {
	var feedback string
	sess, err := e.withSession(sessionID, userID, true, func(tx *persistence.Tx, sess *game.Session) error {
		openMonth, _, ok := e.cfg.IPOByName(name)
		if !ok {
			return game.E(game.KindNotFound, "no IPO named %q", name)
		}
		if sess.CurrentMonth != openMonth {
			return game.E(game.KindValidation, "%s IPO is only open in month %d", name, openMonth)
		}
		if amount < e.cfg.IPOMinAmount || amount > e.cfg.IPOMaxAmount {
			return game.E(game.KindValidation, "IPO application must be between ₹%d and ₹%d", e.cfg.IPOMinAmount, e.cfg.IPOMaxAmount)
		}
		if amount > sess.Wealth {
			return game.E(game.KindInsufficientFunds, "insufficient funds")
		}
		for _, app := range sess.ActiveIPOs {
			if app.Name == name {
				return game.E(game.KindDuplicateApplication, "already applied to the %s IPO", name)
			}
		}

		sess.Wealth -= amount
		sess.ActiveIPOs = append(sess.ActiveIPOs, game.IPOApplication{
			Name: name, Amount: amount, Status: "APPLIED", Month: sess.CurrentMonth,
		})
		appendLog(sess, "Month %d: Applied ₹%s to the %s IPO.",
			sess.CurrentMonth, humanize.Comma(int64(amount)), name)
		feedback = fmt.Sprintf("Applied ₹%s to the %s IPO. Allotment at listing.", humanize.Comma(int64(amount)), name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Session: sess, Feedback: feedback}, nil
}

// Holding is one priced position in the market status view.
type Holding struct {
	Key   string  `json:"key"`
	Units float64 `json:"units"`
	Price float64 `json:"price"`
	Value int     `json:"value"`
}

// MarketStatus is the read-only market view for a session.
type MarketStatus struct {
	Prices         map[string]float64 `json:"prices"`
	Trends         map[string]int     `json:"trends"`
	Holdings       []Holding          `json:"holdings"`
	PortfolioValue int                `json:"portfolio_value"`
	Wealth         int                `json:"wealth"`
	NetWorth       int                `json:"net_worth"`
}

// GetMarketStatus prices the session's book at current spots.
func (e *Engine) GetMarketStatus(userID, sessionID string) (*MarketStatus, error) {
	sess, err := e.GetSession(sessionID, userID)
	if err != nil {
		return nil, err
	}

	status := &MarketStatus{
		Prices: sess.MarketPrices,
		Trends: sess.MarketTrends,
		Wealth: sess.Wealth,
	}
	for _, sector := range e.cfg.Sectors {
		units := sess.Portfolio[sector]
		if units <= 0 {
			continue
		}
		price := sess.MarketPrices[sector]
		status.Holdings = append(status.Holdings, Holding{
			Key: sector, Units: units, Price: price, Value: int(units * price),
		})
	}
	for _, name := range e.cfg.FundNames() {
		h, ok := sess.MutualFunds[name]
		if !ok || h.Units <= 0 {
			continue
		}
		nav := sess.MarketPrices["MF_"+name]
		status.Holdings = append(status.Holdings, Holding{
			Key: "MF_" + name, Units: h.Units, Price: nav, Value: int(h.Units * nav),
		})
	}
	for _, h := range status.Holdings {
		status.PortfolioValue += h.Value
	}
	status.NetWorth = status.Wealth + status.PortfolioValue
	return status, nil
}
