// Package engine is the game's state machine. Every verb loads the
// session inside one transaction, mutates it, and saves it; a
// per-session mutex serializes concurrent verbs on the same session.
package engine

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/arthneeti/arthneeti/internal/advisor"
	"github.com/arthneeti/arthneeti/internal/config"
	"github.com/arthneeti/arthneeti/internal/deck"
	"github.com/arthneeti/arthneeti/internal/entropy"
	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/llm"
	"github.com/arthneeti/arthneeti/internal/market"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

// ScenarioGenerator produces AI scenario cards. May be nil.
type ScenarioGenerator interface {
	GenerateScenario(ctx context.Context, category string, month, wealth, literacy int) (*deck.Card, error)
}

// ReportRenderer produces the final Markdown report. May be nil.
type ReportRenderer interface {
	RenderReport(ctx context.Context, gameplayLog string, wealth, happiness, credit, literacy int, endReason string) (string, error)
}

// Engine drives sessions. All dependencies are injected; nil LLM
// collaborators degrade to the deterministic paths.
type Engine struct {
	cfg       config.Config
	store     *persistence.Store
	deck      *deck.Deck
	market    *market.Simulator
	advisor   *advisor.Advisor
	scenarios ScenarioGenerator
	reports   ReportRenderer
	forecast  market.ForecastProvider
	rng       entropy.Source

	locks sync.Map // session ID -> *sync.Mutex
}

// Options bundles the optional collaborators.
type Options struct {
	Scenarios ScenarioGenerator
	Reports   ReportRenderer
	Forecast  market.ForecastProvider
}

// New wires an engine. llmClient may be nil; when non-nil it serves as
// the default scenario generator and report renderer unless Options
// overrides them.
func New(cfg config.Config, store *persistence.Store, d *deck.Deck, sim *market.Simulator, adv *advisor.Advisor, rng entropy.Source, llmClient *llm.Client, opts Options) *Engine {
	e := &Engine{
		cfg:       cfg,
		store:     store,
		deck:      d,
		market:    sim,
		advisor:   adv,
		scenarios: opts.Scenarios,
		reports:   opts.Reports,
		forecast:  opts.Forecast,
		rng:       rng,
	}
	if e.scenarios == nil && llmClient.Enabled() {
		e.scenarios = llmClient
	}
	if e.reports == nil && llmClient.Enabled() {
		e.reports = llmClient
	}
	return e
}

// Result is the envelope every mutating verb returns.
type Result struct {
	Session        *game.Session             `json:"session"`
	Feedback       string                    `json:"feedback,omitempty"`
	MonthAdvanced  bool                      `json:"month_advanced"`
	GameOver       bool                      `json:"game_over"`
	GameOverReason game.EndReason            `json:"game_over_reason,omitempty"`
	FinalPersona   *game.Persona             `json:"final_persona,omitempty"`
	Chatbot        *advisor.CharacterMessage `json:"chatbot,omitempty"`
}

// lock returns the mutex for one session, creating it on first use.
func (e *Engine) lock(sessionID string) *sync.Mutex {
	mu, _ := e.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// withSession runs fn under the session lock inside one transaction,
// with the session already loaded and ownership verified. fn mutates
// the session; the wrapper saves it.
func (e *Engine) withSession(sessionID, userID string, requireActive bool, fn func(tx *persistence.Tx, sess *game.Session) error) (*game.Session, error) {
	mu := e.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	var out *game.Session
	err := e.store.WithTx(func(tx *persistence.Tx) error {
		sess, err := tx.GetSession(sessionID)
		if err != nil {
			return err
		}
		if sess.UserID != userID {
			return game.E(game.KindPermissionDenied, "session belongs to another user")
		}
		if requireActive && !sess.IsActive {
			return game.E(game.KindValidation, "session is not active")
		}
		if err := fn(tx, sess); err != nil {
			return err
		}
		out = sess
		return tx.UpdateSession(sess)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// appendLog adds one line to the session's gameplay log.
func appendLog(sess *game.Session, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if line == "" {
		return
	}
	if sess.GameplayLog == "" {
		sess.GameplayLog = line
		return
	}
	sess.GameplayLog += "\n" + line
}

// refreshLevel recomputes the level from month and literacy. Levels
// never go down.
func (e *Engine) refreshLevel(sess *game.Session) {
	level := e.cfg.LevelFor(sess.CurrentMonth, sess.FinancialLiteracy)
	if level > sess.CurrentLevel {
		sess.CurrentLevel = level
	}
}

// sessionSeed derives a stable per-session seed for noise-driven
// market components.
func sessionSeed(sessionID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(sessionID))
	return int64(h.Sum64() >> 1)
}
