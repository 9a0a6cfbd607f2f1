// Package game defines the session aggregate and its child records.
// All money amounts are whole rupees; stats are clamped at the point
// of mutation, never at read time.
package game

import "time"

// Expense categories. DEBT expenses are created by loans and cannot be
// cancelled through the normal subscription path.
const (
	CategoryHousing   = "HOUSING"
	CategoryFood      = "FOOD"
	CategoryUtilities = "UTILITIES"
	CategoryTransport = "TRANSPORT"
	CategoryLifestyle = "LIFESTYLE"
	CategoryDebt      = "DEBT"
)

// Income source types. FREELANCE income has a 30% chance of paying
// nothing in a given month.
const (
	IncomeSalary    = "SALARY"
	IncomeFreelance = "FREELANCE"
	IncomeBusiness  = "BUSINESS"
	IncomeRental    = "RENTAL"
)

// End-of-game reasons.
type EndReason string

const (
	EndBankruptcy EndReason = "BANKRUPTCY"
	EndBurnout    EndReason = "BURNOUT"
	EndCompleted  EndReason = "COMPLETED"
)

// FundHolding is one mutual fund position. Invested tracks the rupees
// put in so that partial sales can prorate the cost basis.
type FundHolding struct {
	Units    float64 `json:"units"`
	Invested float64 `json:"invested"`
}

// IPOApplication is a pending or resolved IPO bid.
type IPOApplication struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
	Status string `json:"status"` // APPLIED, LISTED
	Month  int    `json:"month"`  // month the IPO opened
}

// TradeRecord is an append-only note of a stock purchase, kept for the
// final report and the highest-profit profile aggregate.
type TradeRecord struct {
	Sector string  `json:"sector"`
	Units  float64 `json:"units"`
	Price  float64 `json:"price"`
	Month  int     `json:"month"`
}

// Session is the full state of one playthrough. It is the unit of
// locking and of persistence: every engine verb loads it, mutates it,
// and saves it inside a single transaction.
type Session struct {
	ID                string
	UserID            string
	CurrentMonth      int
	Wealth            int
	Happiness         int
	CreditScore       int
	FinancialLiteracy int
	Lifelines         int
	CurrentLevel      int
	IsActive          bool

	// MarketPrices holds sector spot prices (whole-rupee values) and
	// fund NAVs under "MF_<name>" keys.
	MarketPrices map[string]float64
	// MarketTrends holds per-sector momentum in [-3, 3].
	MarketTrends map[string]int
	// Portfolio maps sector -> units held.
	Portfolio map[string]float64
	// MutualFunds maps fund name -> holding.
	MutualFunds     map[string]FundHolding
	ActiveIPOs      []IPOApplication
	PurchaseHistory []TradeRecord

	// RecurringExpenses caches the current total monthly drain for
	// display; the expense table is the source of truth.
	RecurringExpenses int

	GameplayLog string
	FinalReport string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecurringExpense is a monthly drain on the session's wealth.
// Cancellation is a soft delete: the row survives for the report.
type RecurringExpense struct {
	ID             int64
	SessionID      string
	Name           string
	Amount         int
	Category       string
	IsEssential    bool
	InflationRate  float64
	StartedMonth   int
	IsCancelled    bool
	CancelledMonth int // zero when active
}

// FuturesContract records a cash-settled futures sale.
type FuturesContract struct {
	ID             int64
	SessionID      string
	Sector         string
	Units          float64
	ContractPrice  float64
	SpotAtSale     float64
	DurationMonths int
	CreatedMonth   int
}

// IncomeSource is a recurring credit applied on month advance.
type IncomeSource struct {
	ID         int64
	SessionID  string
	SourceType string
	AmountBase int
}

// PlayLogEntry records one card shown to the player, with the choice
// taken (nil for skips). The count of entries drives month advancement.
type PlayLogEntry struct {
	ID        int64
	SessionID string
	CardID    int64
	ChoiceID  *int64
	CreatedAt time.Time
}

// GameHistory is the immutable record written exactly once when a
// session finalizes.
type GameHistory struct {
	ID                int64
	UserID            string
	SessionID         string
	FinalWealth       int
	FinalHappiness    int
	FinalCreditScore  int
	FinancialLiteracy int
	Persona           string
	EndReason         EndReason
	MonthsPlayed      int
	PlayedAt          time.Time
}

// PlayerProfile carries cross-session aggregates for one user.
// CareerStage feeds the business-mentor character trigger.
type PlayerProfile struct {
	UserID             string
	TotalGames         int
	HighestWealth      int
	HighestScore       int
	HighestCreditScore int
	HighestHappiness   int
	HighestStockProfit int
	CareerStage        string
}

// CareerStage values.
const (
	CareerSalaried      = "SALARIED"
	CareerBusinessOwner = "BUSINESS_OWNER"
)

// Persona is the end-of-game archetype classification.
type Persona struct {
	Persona     string `json:"persona"`
	Description string `json:"description"`
	FinalScore  int    `json:"final_score"`
	NetWorth    int    `json:"net_worth"`
}

// User is an account. The token is a stable bearer credential issued
// at registration and rotated on login.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Token        string
	CreatedAt    time.Time
}

// Stat bounds.
const (
	MinHappiness = 0
	MaxHappiness = 100
	MinCredit    = 300
	MaxCredit    = 900
)

// AddHappiness applies a delta and clamps to [0, 100].
func (s *Session) AddHappiness(delta int) {
	s.Happiness += delta
	if s.Happiness < MinHappiness {
		s.Happiness = MinHappiness
	}
	if s.Happiness > MaxHappiness {
		s.Happiness = MaxHappiness
	}
}

// AddCredit applies a delta and clamps to [300, 900].
func (s *Session) AddCredit(delta int) {
	s.CreditScore += delta
	if s.CreditScore < MinCredit {
		s.CreditScore = MinCredit
	}
	if s.CreditScore > MaxCredit {
		s.CreditScore = MaxCredit
	}
}

// AddLiteracy applies a delta; literacy never drops below zero and has
// no upper bound.
func (s *Session) AddLiteracy(delta int) {
	s.FinancialLiteracy += delta
	if s.FinancialLiteracy < 0 {
		s.FinancialLiteracy = 0
	}
}

// PortfolioValue prices every stock position and fund holding at the
// session's current market prices, in whole rupees.
func (s *Session) PortfolioValue() int {
	total := 0.0
	for sector, units := range s.Portfolio {
		total += units * s.MarketPrices[sector]
	}
	for name, h := range s.MutualFunds {
		total += h.Units * s.MarketPrices["MF_"+name]
	}
	return int(total)
}

// NetWorth is cash plus the marked-to-market portfolio.
func (s *Session) NetWorth() int {
	return s.Wealth + s.PortfolioValue()
}
