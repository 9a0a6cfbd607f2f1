package persistence

import (
	"fmt"
	"time"

	"github.com/arthneeti/arthneeti/internal/deck"
	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/market"
)

// ---- recurring expenses ----

type expenseRow struct {
	ID             int64   `db:"id"`
	SessionID      string  `db:"session_id"`
	Name           string  `db:"name"`
	Amount         int     `db:"amount"`
	Category       string  `db:"category"`
	IsEssential    bool    `db:"is_essential"`
	InflationRate  float64 `db:"inflation_rate"`
	StartedMonth   int     `db:"started_month"`
	IsCancelled    bool    `db:"is_cancelled"`
	CancelledMonth int     `db:"cancelled_month"`
}

// InsertExpense adds a recurring expense.
func (t *Tx) InsertExpense(e *game.RecurringExpense) error {
	res, err := t.tx.Exec(`INSERT INTO expenses
		(session_id, name, amount, category, is_essential, inflation_rate, started_month)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Name, e.Amount, e.Category, e.IsEssential, e.InflationRate, e.StartedMonth)
	if err != nil {
		return fmt.Errorf("insert expense %q: %w", e.Name, err)
	}
	e.ID, _ = res.LastInsertId()
	return nil
}

// ActiveExpenses returns the session's non-cancelled expenses.
func (t *Tx) ActiveExpenses(sessionID string) ([]game.RecurringExpense, error) {
	var rows []expenseRow
	err := t.tx.Select(&rows, `SELECT id, session_id, name, amount, category, is_essential,
		inflation_rate, started_month, is_cancelled, cancelled_month
		FROM expenses WHERE session_id = ? AND is_cancelled = 0 ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("active expenses: %w", err)
	}
	out := make([]game.RecurringExpense, len(rows))
	for i, r := range rows {
		out[i] = game.RecurringExpense(r)
	}
	return out, nil
}

// CancelExpense soft-deletes an active expense by name. Already
// cancelled or absent expenses are a no-op, so cancellation is
// idempotent.
func (t *Tx) CancelExpense(sessionID, name string, month int) (bool, error) {
	res, err := t.tx.Exec(`UPDATE expenses SET is_cancelled = 1, cancelled_month = ?
		WHERE session_id = ? AND name = ? AND is_cancelled = 0`, month, sessionID, name)
	if err != nil {
		return false, fmt.Errorf("cancel expense %q: %w", name, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UpdateExpenseAmount rewrites an expense's amount (inflation).
func (t *Tx) UpdateExpenseAmount(id int64, amount int) error {
	_, err := t.tx.Exec("UPDATE expenses SET amount = ? WHERE id = ?", amount, id)
	return err
}

// ---- stock history ----

// InsertStockHistory writes a full pre-generated trajectory batch.
func (t *Tx) InsertStockHistory(sessionID string, trajectories map[string][]float64) error {
	stmt, err := t.tx.Preparex(
		"INSERT INTO stock_history (session_id, sector, month, price) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for sector, prices := range trajectories {
		for i, price := range prices {
			if _, err := stmt.Exec(sessionID, sector, i+1, price); err != nil {
				return fmt.Errorf("insert history %s m%d: %w", sector, i+1, err)
			}
		}
	}
	return nil
}

// StockPricesForMonth returns sector -> price for one month.
func (t *Tx) StockPricesForMonth(sessionID string, month int) (map[string]float64, error) {
	var rows []struct {
		Sector string  `db:"sector"`
		Price  float64 `db:"price"`
	}
	err := t.tx.Select(&rows,
		"SELECT sector, price FROM stock_history WHERE session_id = ? AND month = ?",
		sessionID, month)
	if err != nil {
		return nil, fmt.Errorf("prices for month %d: %w", month, err)
	}
	out := make(map[string]float64, len(rows))
	for _, r := range rows {
		out[r.Sector] = r.Price
	}
	return out, nil
}

// ---- futures ----

// InsertFutures records a cash-settled contract sale.
func (t *Tx) InsertFutures(c *game.FuturesContract) error {
	res, err := t.tx.Exec(`INSERT INTO futures_contracts
		(session_id, sector, units, contract_price, spot_at_sale, duration_months, created_month)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.SessionID, c.Sector, c.Units, c.ContractPrice, c.SpotAtSale, c.DurationMonths, c.CreatedMonth)
	if err != nil {
		return fmt.Errorf("insert futures: %w", err)
	}
	c.ID, _ = res.LastInsertId()
	return nil
}

// FuturesForSession lists the session's contract sales, oldest first.
func (t *Tx) FuturesForSession(sessionID string) ([]game.FuturesContract, error) {
	var rows []struct {
		ID             int64   `db:"id"`
		SessionID      string  `db:"session_id"`
		Sector         string  `db:"sector"`
		Units          float64 `db:"units"`
		ContractPrice  float64 `db:"contract_price"`
		SpotAtSale     float64 `db:"spot_at_sale"`
		DurationMonths int     `db:"duration_months"`
		CreatedMonth   int     `db:"created_month"`
	}
	err := t.tx.Select(&rows, `SELECT id, session_id, sector, units, contract_price,
		spot_at_sale, duration_months, created_month
		FROM futures_contracts WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list futures: %w", err)
	}
	out := make([]game.FuturesContract, len(rows))
	for i, r := range rows {
		out[i] = game.FuturesContract(r)
	}
	return out, nil
}

// ---- income sources ----

// InsertIncomeSource adds a recurring income record.
func (t *Tx) InsertIncomeSource(src *game.IncomeSource) error {
	res, err := t.tx.Exec(
		"INSERT INTO income_sources (session_id, source_type, amount_base) VALUES (?, ?, ?)",
		src.SessionID, src.SourceType, src.AmountBase)
	if err != nil {
		return fmt.Errorf("insert income source: %w", err)
	}
	src.ID, _ = res.LastInsertId()
	return nil
}

// IncomeSources lists the session's income records.
func (t *Tx) IncomeSources(sessionID string) ([]game.IncomeSource, error) {
	var rows []struct {
		ID         int64  `db:"id"`
		SessionID  string `db:"session_id"`
		SourceType string `db:"source_type"`
		AmountBase int    `db:"amount_base"`
	}
	err := t.tx.Select(&rows,
		"SELECT id, session_id, source_type, amount_base FROM income_sources WHERE session_id = ? ORDER BY id",
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("income sources: %w", err)
	}
	out := make([]game.IncomeSource, len(rows))
	for i, r := range rows {
		out[i] = game.IncomeSource(r)
	}
	return out, nil
}

// ---- play log ----

// InsertPlayLog records one card resolution. choiceID is nil on skips.
func (t *Tx) InsertPlayLog(sessionID string, cardID int64, choiceID *int64) error {
	_, err := t.tx.Exec(
		"INSERT INTO play_log (session_id, card_id, choice_id, created_at) VALUES (?, ?, ?, ?)",
		sessionID, cardID, choiceID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert play log: %w", err)
	}
	return nil
}

// PlayLogCount returns how many cards the session has resolved.
func (t *Tx) PlayLogCount(sessionID string) (int, error) {
	var n int
	err := t.tx.Get(&n, "SELECT COUNT(*) FROM play_log WHERE session_id = ?", sessionID)
	return n, err
}

// ShownCardIDs returns the set of cards already dealt to the session.
func (t *Tx) ShownCardIDs(sessionID string) (map[int64]bool, error) {
	var ids []int64
	err := t.tx.Select(&ids, "SELECT DISTINCT card_id FROM play_log WHERE session_id = ?", sessionID)
	if err != nil {
		return nil, fmt.Errorf("shown cards: %w", err)
	}
	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// ---- generated cards ----

// InsertGeneratedCard stores an AI-generated card for the session and
// returns its assigned ID in the generated namespace.
func (t *Tx) InsertGeneratedCard(sessionID string, card *deck.Card) (int64, error) {
	res, err := t.tx.Exec(
		"INSERT INTO generated_cards (session_id, card_json) VALUES (?, ?)", sessionID, "{}")
	if err != nil {
		return 0, fmt.Errorf("insert generated card: %w", err)
	}
	rowID, _ := res.LastInsertId()
	card.ID = deck.GeneratedIDBase + rowID
	for i := range card.Choices {
		card.Choices[i].ID = card.ID*10 + int64(i+1)
	}
	data, err := deck.Marshal(card)
	if err != nil {
		return 0, fmt.Errorf("marshal generated card: %w", err)
	}
	if _, err := t.tx.Exec("UPDATE generated_cards SET card_json = ? WHERE id = ?", string(data), rowID); err != nil {
		return 0, fmt.Errorf("store generated card: %w", err)
	}
	return card.ID, nil
}

// GeneratedCard loads a stored AI card by its public ID.
func (t *Tx) GeneratedCard(sessionID string, cardID int64) (*deck.Card, error) {
	var data string
	err := t.tx.Get(&data,
		"SELECT card_json FROM generated_cards WHERE id = ? AND session_id = ?",
		cardID-deck.GeneratedIDBase, sessionID)
	if IsNotFound(err) {
		return nil, game.E(game.KindNotFound, "card not found")
	}
	if err != nil {
		return nil, fmt.Errorf("generated card %d: %w", cardID, err)
	}
	return deck.Unmarshal([]byte(data))
}

// ---- history and profiles ----

// InsertHistory writes the immutable end-of-game record.
func (t *Tx) InsertHistory(h *game.GameHistory) error {
	_, err := t.tx.Exec(`INSERT INTO game_history
		(user_id, session_id, final_wealth, final_happiness, final_credit_score,
		 financial_literacy, persona, end_reason, months_played, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.UserID, h.SessionID, h.FinalWealth, h.FinalHappiness, h.FinalCreditScore,
		h.FinancialLiteracy, h.Persona, string(h.EndReason), h.MonthsPlayed, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// Profile loads a user's aggregate profile, zero-valued when absent.
func (t *Tx) Profile(userID string) (*game.PlayerProfile, error) {
	var row struct {
		UserID             string `db:"user_id"`
		TotalGames         int    `db:"total_games"`
		HighestWealth      int    `db:"highest_wealth"`
		HighestScore       int    `db:"highest_score"`
		HighestCreditScore int    `db:"highest_credit_score"`
		HighestHappiness   int    `db:"highest_happiness"`
		HighestStockProfit int    `db:"highest_stock_profit"`
		CareerStage        string `db:"career_stage"`
	}
	err := t.tx.Get(&row, "SELECT * FROM player_profiles WHERE user_id = ?", userID)
	if IsNotFound(err) {
		return &game.PlayerProfile{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &game.PlayerProfile{
		UserID:             row.UserID,
		TotalGames:         row.TotalGames,
		HighestWealth:      row.HighestWealth,
		HighestScore:       row.HighestScore,
		HighestCreditScore: row.HighestCreditScore,
		HighestHappiness:   row.HighestHappiness,
		HighestStockProfit: row.HighestStockProfit,
		CareerStage:        row.CareerStage,
	}, nil
}

// SaveProfile upserts the user's aggregate profile.
func (t *Tx) SaveProfile(p *game.PlayerProfile) error {
	_, err := t.tx.Exec(`INSERT INTO player_profiles
		(user_id, total_games, highest_wealth, highest_score, highest_credit_score,
		 highest_happiness, highest_stock_profit, career_stage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			total_games = excluded.total_games,
			highest_wealth = excluded.highest_wealth,
			highest_score = excluded.highest_score,
			highest_credit_score = excluded.highest_credit_score,
			highest_happiness = excluded.highest_happiness,
			highest_stock_profit = excluded.highest_stock_profit,
			career_stage = excluded.career_stage`,
		p.UserID, p.TotalGames, p.HighestWealth, p.HighestScore,
		p.HighestCreditScore, p.HighestHappiness, p.HighestStockProfit, p.CareerStage)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// ProfileForUser reads the aggregate profile outside a transaction.
func (s *Store) ProfileForUser(userID string) (*game.PlayerProfile, error) {
	var p *game.PlayerProfile
	err := s.WithTx(func(tx *Tx) error {
		var err error
		p, err = tx.Profile(userID)
		return err
	})
	return p, err
}

// HistoryForUser lists a user's finished games, newest first.
func (s *Store) HistoryForUser(userID string, limit int) ([]game.GameHistory, error) {
	var rows []struct {
		ID                int64     `db:"id"`
		UserID            string    `db:"user_id"`
		SessionID         string    `db:"session_id"`
		FinalWealth       int       `db:"final_wealth"`
		FinalHappiness    int       `db:"final_happiness"`
		FinalCreditScore  int       `db:"final_credit_score"`
		FinancialLiteracy int       `db:"financial_literacy"`
		Persona           string    `db:"persona"`
		EndReason         string    `db:"end_reason"`
		MonthsPlayed      int       `db:"months_played"`
		PlayedAt          time.Time `db:"played_at"`
	}
	err := s.conn.Select(&rows,
		"SELECT * FROM game_history WHERE user_id = ? ORDER BY id DESC LIMIT ?", userID, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	out := make([]game.GameHistory, len(rows))
	for i, r := range rows {
		out[i] = game.GameHistory{
			ID: r.ID, UserID: r.UserID, SessionID: r.SessionID,
			FinalWealth: r.FinalWealth, FinalHappiness: r.FinalHappiness,
			FinalCreditScore: r.FinalCreditScore, FinancialLiteracy: r.FinancialLiteracy,
			Persona: r.Persona, EndReason: game.EndReason(r.EndReason),
			MonthsPlayed: r.MonthsPlayed, PlayedAt: r.PlayedAt,
		}
	}
	return out, nil
}

// ---- market ticks ----

// InsertTicks appends seed market data for a ticker.
func (s *Store) InsertTicks(ticks []market.Tick) error {
	if len(ticks) == 0 {
		return nil
	}
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, tk := range ticks {
		if _, err := tx.Exec(
			"INSERT INTO market_ticks (ticker, tick_date, close) VALUES (?, ?, ?)",
			tk.Ticker, tk.Date, tk.Close); err != nil {
			return fmt.Errorf("insert tick: %w", err)
		}
	}
	return tx.Commit()
}

// RecentTicks returns up to limit newest ticks for a ticker, oldest
// first so they feed the forecast in chronological order.
func (s *Store) RecentTicks(ticker string, limit int) ([]market.Tick, error) {
	var rows []struct {
		Ticker   string    `db:"ticker"`
		TickDate time.Time `db:"tick_date"`
		Close    float64   `db:"close"`
	}
	err := s.conn.Select(&rows,
		"SELECT ticker, tick_date, close FROM market_ticks WHERE ticker = ? ORDER BY tick_date DESC LIMIT ?",
		ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("recent ticks: %w", err)
	}
	out := make([]market.Tick, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = market.Tick{Ticker: r.Ticker, Date: r.TickDate, Close: r.Close}
	}
	return out, nil
}
