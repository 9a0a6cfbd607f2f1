// Package persistence provides SQLite-based game state storage. Each
// engine verb runs inside one transaction so a failed operation leaves
// the session untouched.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite connection for game state persistence.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// OpenMemory opens an in-memory database for tests and playtest runs.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		token TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		current_month INTEGER NOT NULL,
		wealth INTEGER NOT NULL,
		happiness INTEGER NOT NULL,
		credit_score INTEGER NOT NULL,
		financial_literacy INTEGER NOT NULL,
		lifelines INTEGER NOT NULL,
		current_level INTEGER NOT NULL,
		is_active INTEGER NOT NULL,
		market_prices_json TEXT NOT NULL,
		market_trends_json TEXT NOT NULL,
		portfolio_json TEXT NOT NULL,
		mutual_funds_json TEXT NOT NULL,
		active_ipos_json TEXT NOT NULL,
		purchase_history_json TEXT NOT NULL,
		recurring_expenses INTEGER NOT NULL DEFAULT 0,
		gameplay_log TEXT NOT NULL,
		final_report TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		name TEXT NOT NULL,
		amount INTEGER NOT NULL,
		category TEXT NOT NULL,
		is_essential INTEGER NOT NULL,
		inflation_rate REAL NOT NULL,
		started_month INTEGER NOT NULL,
		is_cancelled INTEGER NOT NULL DEFAULT 0,
		cancelled_month INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS stock_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		sector TEXT NOT NULL,
		month INTEGER NOT NULL,
		price REAL NOT NULL,
		UNIQUE(session_id, sector, month)
	);

	CREATE TABLE IF NOT EXISTS futures_contracts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		sector TEXT NOT NULL,
		units REAL NOT NULL,
		contract_price REAL NOT NULL,
		spot_at_sale REAL NOT NULL,
		duration_months INTEGER NOT NULL,
		created_month INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS income_sources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		source_type TEXT NOT NULL,
		amount_base INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS play_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		card_id INTEGER NOT NULL,
		choice_id INTEGER,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS generated_cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		card_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		final_wealth INTEGER NOT NULL,
		final_happiness INTEGER NOT NULL,
		final_credit_score INTEGER NOT NULL,
		financial_literacy INTEGER NOT NULL,
		persona TEXT NOT NULL,
		end_reason TEXT NOT NULL,
		months_played INTEGER NOT NULL,
		played_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS player_profiles (
		user_id TEXT PRIMARY KEY,
		total_games INTEGER NOT NULL DEFAULT 0,
		highest_wealth INTEGER NOT NULL DEFAULT 0,
		highest_score INTEGER NOT NULL DEFAULT 0,
		highest_credit_score INTEGER NOT NULL DEFAULT 0,
		highest_happiness INTEGER NOT NULL DEFAULT 0,
		highest_stock_profit INTEGER NOT NULL DEFAULT 0,
		career_stage TEXT NOT NULL DEFAULT 'SALARIED'
	);

	CREATE TABLE IF NOT EXISTS market_ticks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticker TEXT NOT NULL,
		tick_date TIMESTAMP NOT NULL,
		close REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
	CREATE INDEX IF NOT EXISTS idx_expenses_session ON expenses(session_id);
	CREATE INDEX IF NOT EXISTS idx_play_log_session ON play_log(session_id);
	CREATE INDEX IF NOT EXISTS idx_stock_history_session ON stock_history(session_id, month);
	CREATE INDEX IF NOT EXISTS idx_ticks_ticker ON market_ticks(ticker, tick_date);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Tx is one store transaction. Engine verbs do all their reads and
// writes through a Tx so partial updates never land.
type Tx struct {
	tx *sqlx.Tx
}

// WithTx runs fn inside a transaction, committing on nil error.
func (s *Store) WithTx(fn func(*Tx) error) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveMeta stores a key-value pair.
func (s *Store) SaveMeta(key, value string) error {
	_, err := s.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value. Returns "" when absent.
func (s *Store) GetMeta(key string) (string, error) {
	var value string
	err := s.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if IsNotFound(err) {
		return "", nil
	}
	return value, err
}

// IsNotFound reports whether err is the driver's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
