// Package api serves the game over HTTP. Auth endpoints are public;
// everything else requires the bearer token issued at registration.
// Domain errors map to HTTP statuses by kind, with a player-safe
// message in the body.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/arthneeti/arthneeti/internal/engine"
	"github.com/arthneeti/arthneeti/internal/game"
	"github.com/arthneeti/arthneeti/internal/llm"
	"github.com/arthneeti/arthneeti/internal/market"
	"github.com/arthneeti/arthneeti/internal/persistence"
)

const historyLimit = 20

// Server serves the game API.
type Server struct {
	Eng        *engine.Engine
	Store      *persistence.Store
	Translator llm.Translator
	Port       int
	AdminKey   string // Bearer token for admin endpoints. Empty = admin disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	handler := s.Handler()
	go func() {
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Handler builds the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	// LLM-consuming endpoints get their own budgets.
	adviceLimiter := NewRateLimiter(60, time.Hour)
	translateLimiter := NewRateLimiter(30, time.Hour)

	mux := http.NewServeMux()

	// Public.
	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)

	// Authenticated game verbs.
	mux.HandleFunc("POST /api/v1/game/start", s.auth(s.handleStart))
	mux.HandleFunc("GET /api/v1/game/session/{id}", s.auth(s.handleSession))
	mux.HandleFunc("GET /api/v1/game/session/{id}/card", s.auth(s.handleNextCard))
	mux.HandleFunc("POST /api/v1/game/session/{id}/choice", s.auth(s.handleChoice))
	mux.HandleFunc("POST /api/v1/game/session/{id}/skip", s.auth(s.handleSkip))
	mux.HandleFunc("POST /api/v1/game/session/{id}/lifeline", s.auth(s.handleLifeline))
	mux.HandleFunc("POST /api/v1/game/session/{id}/loan", s.auth(s.handleLoan))
	mux.HandleFunc("POST /api/v1/game/session/{id}/scam", s.auth(s.handleScam))
	mux.HandleFunc("GET /api/v1/game/session/{id}/advice",
		RateLimitMiddleware(adviceLimiter, s.auth(s.handleAdvice)))

	// Market verbs.
	mux.HandleFunc("GET /api/v1/game/session/{id}/market", s.auth(s.handleMarket))
	mux.HandleFunc("POST /api/v1/game/session/{id}/stocks/buy", s.auth(s.handleBuyStock))
	mux.HandleFunc("POST /api/v1/game/session/{id}/stocks/sell", s.auth(s.handleSellStock))
	mux.HandleFunc("POST /api/v1/game/session/{id}/funds/buy", s.auth(s.handleBuyFund))
	mux.HandleFunc("POST /api/v1/game/session/{id}/funds/sell", s.auth(s.handleSellFund))
	mux.HandleFunc("POST /api/v1/game/session/{id}/futures", s.auth(s.handleFutures))
	mux.HandleFunc("POST /api/v1/game/session/{id}/ipo", s.auth(s.handleIPO))

	// Player records.
	mux.HandleFunc("GET /api/v1/profile", s.auth(s.handleProfile))
	mux.HandleFunc("GET /api/v1/history", s.auth(s.handleHistory))

	// Utility.
	mux.HandleFunc("POST /api/v1/translate",
		RateLimitMiddleware(translateLimiter, s.auth(s.handleTranslate)))

	// Admin: bulk-load real market ticks for the forecast cold start.
	mux.HandleFunc("POST /api/v1/admin/ticks", s.adminOnly(s.handleLoadTicks))

	return corsMiddleware(mux)
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authHandler is a handler with the authenticated user resolved.
type authHandler func(w http.ResponseWriter, r *http.Request, user *game.User)

// auth resolves the bearer token to a user, rejecting the request
// when the token is missing or unknown.
func (s *Server) auth(next authHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, game.E(game.KindPermissionDenied, "missing bearer token"))
			return
		}
		user, err := s.Store.UserByToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, err)
			return
		}
		next(w, r, user)
	}
}

// adminOnly requires the admin bearer token.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no ARTHNEETI_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") || strings.TrimPrefix(header, "Bearer ") != s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < 3 {
		writeError(w, game.E(game.KindValidation, "username must be at least 3 characters"))
		return
	}
	if len(req.Password) < 6 {
		writeError(w, game.E(game.KindValidation, "password must be at least 6 characters"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, err)
		return
	}
	user, err := s.Store.CreateUser(req.Username, string(hash))
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("user registered", "user", user.ID, "username", user.Username)
	writeJSON(w, map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
		"token":    user.Token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	user, err := s.Store.UserByName(strings.TrimSpace(req.Username))
	if err != nil {
		writeError(w, game.E(game.KindPermissionDenied, "invalid username or password"))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, game.E(game.KindPermissionDenied, "invalid username or password"))
		return
	}

	// Each login invalidates the previous token.
	token, err := s.Store.RotateToken(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
		"token":    token,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"name":    "Arth-Neeti",
		"version": "v1",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request, user *game.User) {
	sess, err := s.Eng.StartNewSession(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, sess)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request, user *game.User) {
	sess, err := s.Eng.GetSession(r.PathValue("id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, sess)
}

func (s *Server) handleNextCard(w http.ResponseWriter, r *http.Request, user *game.User) {
	card, err := s.Eng.NextCard(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, card)
}

func (s *Server) handleChoice(w http.ResponseWriter, r *http.Request, user *game.User) {
	var req struct {
		CardID   int64 `json:"card_id"`
		ChoiceID int64 `json:"choice_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	res, err := s.Eng.SubmitChoice(r.Context(), user.ID, r.PathValue("id"), req.CardID, req.ChoiceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request, user *game.User) {
	var req struct {
		CardID int64 `json:"card_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	res, err := s.Eng.SkipCard(r.Context(), user.ID, r.PathValue("id"), req.CardID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleLifeline(w http.ResponseWriter, r *http.Request, user *game.User) {
	var req struct {
		CardID int64 `json:"card_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	hint, err := s.Eng.UseLifeline(user.ID, r.PathValue("id"), req.CardID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, hint)
}

func (s *Server) handleLoan(w http.ResponseWriter, r *http.Request, user *game.User) {
	var req struct {
		LoanType string `json:"loan_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	res, err := s.Eng.TakeLoan(user.ID, r.PathValue("id"), req.LoanType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleScam(w http.ResponseWriter, r *http.Request, user *game.User) {
	var req struct {
		Accepted bool `json:"accepted"`
		Amount   int  `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	res, err := s.Eng.ProcessScamChoice(r.Context(), user.ID, r.PathValue("id"), req.Accepted, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request, user *game.User) {
	cardID, err := strconv.ParseInt(r.URL.Query().Get("card_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid card_id", http.StatusBadRequest)
		return
	}
	advice, err := s.Eng.GetAdvice(r.Context(), user.ID, r.PathValue("id"), cardID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, advice)
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request, user *game.User) {
	status, err := s.Eng.GetMarketStatus(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status)
}

func (s *Server) handleBuyStock(w http.ResponseWriter, r *http.Request, user *game.User) {
	var req struct {
		Sector string `json:"sector"`
		Amount int    `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	res, err := s.Eng.BuyStock(user.ID, r.PathValue("id"), req.Sector, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleSellStock(w http.ResponseWriter, r *http.Request, user *game.User) {
	var req struct {
		Sector string  `json:"sector"`
		Units  float64 `json:"units"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	res, err := s.Eng.SellStock(user.ID, r.PathValue("id"), req.Sector, req.Units)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleBuyFund(w http.ResponseWriter, r *http.Request, user *game.User) {
	var req struct {
		Fund   string `json:"fund"`
		Amount int    `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	res, err := s.Eng.BuyMutualFund(user.ID, r.PathValue("id"), req.Fund, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleSellFund(w http.ResponseWriter, r *http.Request, user *game.User) {
	var req struct {
		Fund  string  `json:"fund"`
		Units float64 `json:"units"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	res, err := s.Eng.SellMutualFund(user.ID, r.PathValue("id"), req.Fund, req.Units)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleFutures(w http.ResponseWriter, r *http.Request, user *game.User) {
	var req struct {
		Sector         string  `json:"sector"`
		Units          float64 `json:"units"`
		DurationMonths int     `json:"duration_months"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	res, err := s.Eng.SellFutures(user.ID, r.PathValue("id"), req.Sector, req.Units, req.DurationMonths)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleIPO(w http.ResponseWriter, r *http.Request, user *game.User) {
	var req struct {
		Name   string `json:"name"`
		Amount int    `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	res, err := s.Eng.ApplyForIPO(user.ID, r.PathValue("id"), req.Name, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, user *game.User) {
	profile, err := s.Store.ProfileForUser(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, profile)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, user *game.User) {
	history, err := s.Store.HistoryForUser(user.ID, historyLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, history)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request, user *game.User) {
	var req struct {
		Texts          []string `json:"texts"`
		TargetLanguage string   `json:"target_language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if len(req.Texts) == 0 || len(req.Texts) > 50 {
		writeError(w, game.E(game.KindValidation, "texts must contain 1-50 entries"))
		return
	}
	if req.TargetLanguage == "" {
		writeError(w, game.E(game.KindValidation, "target_language is required"))
		return
	}

	translator := s.Translator
	if translator == nil {
		translator = llm.IdentityTranslator{}
	}
	out, err := translator.TranslateBatch(r.Context(), req.Texts, req.TargetLanguage)
	if err != nil {
		// Translation is best-effort: serve the originals.
		slog.Debug("translation failed, returning originals", "error", err)
		out = req.Texts
	}
	writeJSON(w, map[string]any{"translations": out})
}

func (s *Server) handleLoadTicks(w http.ResponseWriter, r *http.Request) {
	var req []struct {
		Ticker string  `json:"ticker"`
		Date   string  `json:"date"`
		Close  float64 `json:"close"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	ticks := make([]market.Tick, 0, len(req))
	for _, t := range req {
		date, err := time.Parse("2006-01-02", t.Date)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid date %q", t.Date), http.StatusBadRequest)
			return
		}
		ticks = append(ticks, market.Tick{Ticker: t.Ticker, Date: date, Close: t.Close})
	}
	if err := s.Store.InsertTicks(ticks); err != nil {
		writeError(w, err)
		return
	}
	slog.Info("market ticks loaded", "count", len(ticks))
	writeJSON(w, map[string]any{"loaded": len(ticks)})
}

// statusFor maps a domain error kind to an HTTP status.
func statusFor(kind game.Kind) int {
	switch kind {
	case game.KindValidation, game.KindGated, game.KindInsufficientFunds,
		game.KindInsufficientUnits, game.KindDuplicateApplication:
		return http.StatusBadRequest
	case game.KindPermissionDenied:
		return http.StatusForbidden
	case game.KindNotFound:
		return http.StatusNotFound
	case game.KindExternalFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := game.KindOf(err)
	status := statusFor(kind)
	if status >= 500 {
		slog.Error("request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": game.Message(err),
		"code":  kind,
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
