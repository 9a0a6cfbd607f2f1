// Command playtest runs headless seeded games against an in-memory
// store and reports the outcome distribution. It exits non-zero when a
// run violates a stat bound, which makes it usable as a balance check
// in CI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/arthneeti/arthneeti/internal/advisor"
	"github.com/arthneeti/arthneeti/internal/config"
	"github.com/arthneeti/arthneeti/internal/deck"
	"github.com/arthneeti/arthneeti/internal/engine"
	"github.com/arthneeti/arthneeti/internal/entropy"
	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/market"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

func main() {
	games := flag.Int("games", 20, "number of games to simulate")
	seed := flag.Int64("seed", 1, "base RNG seed")
	verbose := flag.Bool("v", false, "log every month")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	store, err := persistence.OpenMemory()
	if err != nil {
		slog.Error("open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	cfg := config.Default()
	outcomes := map[game.EndReason]int{}
	personas := map[string]int{}
	totalWealth, totalMonths := 0, 0

	for i := 0; i < *games; i++ {
		rng := entropy.NewSeeded(*seed + int64(i))
		sim := market.NewSimulator(cfg, rng)
		adv := advisor.New(nil, rng)
		eng := engine.New(cfg, store, deck.Builtin(), sim, adv, rng, nil, engine.Options{})

		user, err := store.CreateUser(fmt.Sprintf("playtest-%d-%d", *seed, i), "-")
		if err != nil {
			slog.Error("create user", "error", err)
			os.Exit(1)
		}

		final, err := playOne(eng, cfg, rng, user.ID)
		if err != nil {
			slog.Error("playtest run failed", "game", i, "error", err)
			os.Exit(1)
		}
		if err := checkBounds(final.Session); err != nil {
			slog.Error("invariant violated", "game", i, "error", err)
			os.Exit(1)
		}

		outcomes[final.GameOverReason]++
		if final.FinalPersona != nil {
			personas[final.FinalPersona.Persona]++
		}
		totalWealth += final.Session.Wealth
		totalMonths += final.Session.CurrentMonth
	}

	fmt.Printf("Played %d games (seed %d)\n", *games, *seed)
	for reason, n := range outcomes {
		fmt.Printf("  %-12s %3d (%.0f%%)\n", reason, n, 100*float64(n)/float64(*games))
	}
	fmt.Println("Personas:")
	for p, n := range personas {
		fmt.Printf("  %-22s %3d\n", p, n)
	}
	fmt.Printf("Avg final wealth: ₹%s  Avg months survived: %.1f\n",
		humanize.Comma(int64(totalWealth / *games)), float64(totalMonths)/float64(*games))
}

// playOne drives a single game with a simple policy: mostly take the
// recommended choice, sometimes a random one, rarely skip. It invests
// idle cash once the investing level unlocks.
func playOne(eng *engine.Engine, cfg config.Config, rng entropy.Source, userID string) (*engine.Result, error) {
	ctx := context.Background()
	sess, err := eng.StartNewSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	maxTurns := cfg.GameDurationMonths*cfg.CardsPerMonth + cfg.CardsPerMonth
	for turn := 0; turn < maxTurns; turn++ {
		card, err := eng.NextCard(ctx, userID, sess.ID)
		if err != nil {
			return nil, err
		}

		var res *engine.Result
		switch {
		case entropy.Chance(rng, 0.05):
			res, err = eng.SkipCard(ctx, userID, sess.ID, card.ID)
		case entropy.Chance(rng, 0.7):
			res, err = eng.SubmitChoice(ctx, userID, sess.ID, card.ID, card.Recommended().ID)
		default:
			choice := entropy.Pick(rng, card.Choices)
			res, err = eng.SubmitChoice(ctx, userID, sess.ID, card.ID, choice.ID)
		}
		if err != nil {
			return nil, err
		}
		if res.GameOver {
			return res, nil
		}
		sess = res.Session

		// Park a third of spare cash in stock once investing unlocks.
		if sess.CurrentLevel >= cfg.Unlocks.Investing && sess.Wealth > 40000 && entropy.Chance(rng, 0.3) {
			sector := entropy.Pick(rng, cfg.Sectors)
			if buy, err := eng.BuyStock(userID, sess.ID, sector, sess.Wealth/3); err == nil {
				sess = buy.Session
			}
		}
	}
	return nil, fmt.Errorf("game did not end within %d turns", maxTurns)
}

func checkBounds(sess *game.Session) error {
	if sess.Happiness < game.MinHappiness || sess.Happiness > game.MaxHappiness {
		return fmt.Errorf("happiness %d out of bounds", sess.Happiness)
	}
	if sess.CreditScore < game.MinCredit || sess.CreditScore > game.MaxCredit {
		return fmt.Errorf("credit score %d out of bounds", sess.CreditScore)
	}
	if sess.FinancialLiteracy < 0 {
		return fmt.Errorf("literacy %d negative", sess.FinancialLiteracy)
	}
	if sess.IsActive {
		return fmt.Errorf("session still active after game over")
	}
	return nil
}
