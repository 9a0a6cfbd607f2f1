package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/arthneeti/arthneeti/internal/game"
)

type sessionRow struct {
	ID                  string    `db:"id"`
	UserID              string    `db:"user_id"`
	CurrentMonth        int       `db:"current_month"`
	Wealth              int       `db:"wealth"`
	Happiness           int       `db:"happiness"`
	CreditScore         int       `db:"credit_score"`
	FinancialLiteracy   int       `db:"financial_literacy"`
	Lifelines           int       `db:"lifelines"`
	CurrentLevel        int       `db:"current_level"`
	IsActive            bool      `db:"is_active"`
	MarketPricesJSON    string    `db:"market_prices_json"`
	MarketTrendsJSON    string    `db:"market_trends_json"`
	PortfolioJSON       string    `db:"portfolio_json"`
	MutualFundsJSON     string    `db:"mutual_funds_json"`
	ActiveIPOsJSON      string    `db:"active_ipos_json"`
	PurchaseHistoryJSON string    `db:"purchase_history_json"`
	RecurringExpenses   int       `db:"recurring_expenses"`
	GameplayLog         string    `db:"gameplay_log"`
	FinalReport         string    `db:"final_report"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

func toRow(sess *game.Session) (*sessionRow, error) {
	prices, err := json.Marshal(sess.MarketPrices)
	if err != nil {
		return nil, fmt.Errorf("marshal prices: %w", err)
	}
	trends, err := json.Marshal(sess.MarketTrends)
	if err != nil {
		return nil, fmt.Errorf("marshal trends: %w", err)
	}
	portfolio, err := json.Marshal(sess.Portfolio)
	if err != nil {
		return nil, fmt.Errorf("marshal portfolio: %w", err)
	}
	funds, err := json.Marshal(sess.MutualFunds)
	if err != nil {
		return nil, fmt.Errorf("marshal funds: %w", err)
	}
	ipos, err := json.Marshal(sess.ActiveIPOs)
	if err != nil {
		return nil, fmt.Errorf("marshal ipos: %w", err)
	}
	purchases, err := json.Marshal(sess.PurchaseHistory)
	if err != nil {
		return nil, fmt.Errorf("marshal purchases: %w", err)
	}

	return &sessionRow{
		ID:                  sess.ID,
		UserID:              sess.UserID,
		CurrentMonth:        sess.CurrentMonth,
		Wealth:              sess.Wealth,
		Happiness:           sess.Happiness,
		CreditScore:         sess.CreditScore,
		FinancialLiteracy:   sess.FinancialLiteracy,
		Lifelines:           sess.Lifelines,
		CurrentLevel:        sess.CurrentLevel,
		IsActive:            sess.IsActive,
		MarketPricesJSON:    string(prices),
		MarketTrendsJSON:    string(trends),
		PortfolioJSON:       string(portfolio),
		MutualFundsJSON:     string(funds),
		ActiveIPOsJSON:      string(ipos),
		PurchaseHistoryJSON: string(purchases),
		RecurringExpenses:   sess.RecurringExpenses,
		GameplayLog:         sess.GameplayLog,
		FinalReport:         sess.FinalReport,
		CreatedAt:           sess.CreatedAt,
		UpdatedAt:           sess.UpdatedAt,
	}, nil
}

func fromRow(row *sessionRow) (*game.Session, error) {
	sess := &game.Session{
		ID:                row.ID,
		UserID:            row.UserID,
		CurrentMonth:      row.CurrentMonth,
		Wealth:            row.Wealth,
		Happiness:         row.Happiness,
		CreditScore:       row.CreditScore,
		FinancialLiteracy: row.FinancialLiteracy,
		Lifelines:         row.Lifelines,
		CurrentLevel:      row.CurrentLevel,
		IsActive:          row.IsActive,
		RecurringExpenses: row.RecurringExpenses,
		GameplayLog:       row.GameplayLog,
		FinalReport:       row.FinalReport,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.MarketPricesJSON), &sess.MarketPrices); err != nil {
		return nil, fmt.Errorf("unmarshal prices: %w", err)
	}
	if err := json.Unmarshal([]byte(row.MarketTrendsJSON), &sess.MarketTrends); err != nil {
		return nil, fmt.Errorf("unmarshal trends: %w", err)
	}
	if err := json.Unmarshal([]byte(row.PortfolioJSON), &sess.Portfolio); err != nil {
		return nil, fmt.Errorf("unmarshal portfolio: %w", err)
	}
	if err := json.Unmarshal([]byte(row.MutualFundsJSON), &sess.MutualFunds); err != nil {
		return nil, fmt.Errorf("unmarshal funds: %w", err)
	}
	if err := json.Unmarshal([]byte(row.ActiveIPOsJSON), &sess.ActiveIPOs); err != nil {
		return nil, fmt.Errorf("unmarshal ipos: %w", err)
	}
	if err := json.Unmarshal([]byte(row.PurchaseHistoryJSON), &sess.PurchaseHistory); err != nil {
		return nil, fmt.Errorf("unmarshal purchases: %w", err)
	}
	// Maps survive a nil round trip as JSON null; restore empties so
	// callers can always index.
	if sess.MarketPrices == nil {
		sess.MarketPrices = map[string]float64{}
	}
	if sess.MarketTrends == nil {
		sess.MarketTrends = map[string]int{}
	}
	if sess.Portfolio == nil {
		sess.Portfolio = map[string]float64{}
	}
	if sess.MutualFunds == nil {
		sess.MutualFunds = map[string]game.FundHolding{}
	}
	return sess, nil
}

const sessionColumns = `id, user_id, current_month, wealth, happiness, credit_score,
	financial_literacy, lifelines, current_level, is_active,
	market_prices_json, market_trends_json, portfolio_json, mutual_funds_json,
	active_ipos_json, purchase_history_json, recurring_expenses, gameplay_log,
	final_report, created_at, updated_at`

// InsertSession writes a new session row.
func (t *Tx) InsertSession(sess *game.Session) error {
	row, err := toRow(sess)
	if err != nil {
		return err
	}
	_, err = t.tx.NamedExec(`INSERT INTO sessions (`+sessionColumns+`) VALUES
		(:id, :user_id, :current_month, :wealth, :happiness, :credit_score,
		 :financial_literacy, :lifelines, :current_level, :is_active,
		 :market_prices_json, :market_trends_json, :portfolio_json, :mutual_funds_json,
		 :active_ipos_json, :purchase_history_json, :recurring_expenses, :gameplay_log,
		 :final_report, :created_at, :updated_at)`, row)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", sess.ID, err)
	}
	return nil
}

// UpdateSession rewrites a session row in full.
func (t *Tx) UpdateSession(sess *game.Session) error {
	sess.UpdatedAt = time.Now().UTC()
	row, err := toRow(sess)
	if err != nil {
		return err
	}
	_, err = t.tx.NamedExec(`UPDATE sessions SET
		current_month = :current_month, wealth = :wealth, happiness = :happiness,
		credit_score = :credit_score, financial_literacy = :financial_literacy,
		lifelines = :lifelines, current_level = :current_level, is_active = :is_active,
		market_prices_json = :market_prices_json, market_trends_json = :market_trends_json,
		portfolio_json = :portfolio_json, mutual_funds_json = :mutual_funds_json,
		active_ipos_json = :active_ipos_json, purchase_history_json = :purchase_history_json,
		recurring_expenses = :recurring_expenses, gameplay_log = :gameplay_log,
		final_report = :final_report,
		updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return fmt.Errorf("update session %s: %w", sess.ID, err)
	}
	return nil
}

// GetSession loads a session by ID within the transaction.
func (t *Tx) GetSession(id string) (*game.Session, error) {
	var row sessionRow
	err := t.tx.Get(&row, "SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)
	if IsNotFound(err) {
		return nil, game.E(game.KindNotFound, "session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return fromRow(&row)
}

// GetSession loads a session by ID outside any transaction.
func (s *Store) GetSession(id string) (*game.Session, error) {
	var row sessionRow
	err := s.conn.Get(&row, "SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)
	if IsNotFound(err) {
		return nil, game.E(game.KindNotFound, "session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return fromRow(&row)
}

// ActiveSessionForUser returns the user's most recent active session,
// or nil when none exists.
func (t *Tx) ActiveSessionForUser(userID string) (*game.Session, error) {
	var row sessionRow
	err := t.tx.Get(&row, "SELECT "+sessionColumns+
		" FROM sessions WHERE user_id = ? AND is_active = 1 ORDER BY created_at DESC LIMIT 1", userID)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active session for %s: %w", userID, err)
	}
	return fromRow(&row)
}
