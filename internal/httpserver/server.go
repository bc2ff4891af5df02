// internal/httpserver/server.go
//
// HTTP server wiring for the palabreo session API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request
//     IDs, request logging, per-IP rate limiting).
//   - Diagnostics: "/", "/healthz", "/metrics".
//   - Session endpoints: POST /session, GET /session/{id},
//     POST /session/{id}/guess, DELETE /session/{id}.
//
// Notes:
//   - Sessions live in the store; every mutation runs through store.With so
//     concurrent requests against one session serialize.
//   - Guess rejections are 422 and consume no attempt; finished sessions
//     answer 409; the secret appears in payloads only once a session is
//     terminal.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/palabreo/palabreo/internal/config"
	"github.com/palabreo/palabreo/internal/game"
	"github.com/palabreo/palabreo/internal/store"
)

// Server bundles router, session store, and the candidate source.
type Server struct {
	r       *chi.Mux
	store   store.Store
	src     game.Source
	cfg     *config.Config
	limiter *ipLimiter
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, src game.Source, st store.Store) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		src:     src,
		cfg:     cfg,
		limiter: newIPLimiter(cfg.Server.RateRPS, cfg.Server.RateBurst),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(15 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"palabreo","endpoints":["/healthz","/metrics","POST /session","GET /session/{id}","POST /session/{id}/guess","DELETE /session/{id}"]}`))
	})
	s.r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true,"language":"` + cfg.Language + `"}`))
	})
	s.r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Session endpoints, rate limited per client IP.
	s.r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/session", s.handleNewSession)
		r.Get("/session/{id}", s.handleGetSession)
		r.Post("/session/{id}/guess", s.handleGuess)
		r.Delete("/session/{id}", s.handleAbortSession)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on the configured address until ctx is canceled, then
// drains in-flight requests before returning.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("http server draining")
		return srv.Shutdown(shutCtx)
	}
}

// ----------------------------- SESSION --------------------------------------

// newSessionReq/Res payloads for POST /session.
type newSessionReq struct {
	Length   int  `json:"length"`   // 0 → game.DefaultLength
	Attempts int  `json:"attempts"` // 0 → game.DefaultAttempts
	Daily    bool `json:"daily"`    // deterministic word of the day
}
type newSessionRes struct {
	SessionID   string `json:"sessionId"`
	Length      int    `json:"length"`
	MaxAttempts int    `json:"maxAttempts"`
	Daily       bool   `json:"daily"`
}

// handleNewSession validates requested dimensions, acquires candidates, and
// registers a fresh session.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Length == 0 {
		req.Length = game.DefaultLength
	}
	if req.Attempts == 0 {
		req.Attempts = game.DefaultAttempts
	}

	if err := s.cfg.CheckLength(req.Length); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.cfg.CheckAttempts(req.Attempts); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := game.Start(r.Context(), s.src, game.StartConfig{
		Length:      req.Length,
		MaxAttempts: req.Attempts,
		Daily:       req.Daily,
		DailySalt:   s.cfg.Daily.Salt,
	})
	switch {
	case errors.Is(err, game.ErrNoCandidates):
		respondError(w, http.StatusUnprocessableEntity, "no_candidates")
		return
	case err != nil:
		log.Error().Err(err).Int("length", req.Length).Msg("candidate acquisition failed")
		respondError(w, http.StatusBadGateway, "acquisition_failed")
		return
	}

	id, err := s.store.Create(r.Context(), sess)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		respondError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	mode := "random"
	if req.Daily {
		mode = "daily"
	}
	sessionsStarted.WithLabelValues(mode).Inc()

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newSessionRes{
		SessionID:   id,
		Length:      req.Length,
		MaxAttempts: req.Attempts,
		Daily:       req.Daily,
	})
}

// guessReq/Res payloads for POST /session/{id}/guess.
type guessReq struct {
	Guess string `json:"guess"`
}
type guessRes struct {
	Marks     game.GuessResult `json:"marks"`
	State     game.State       `json:"state"`
	Attempts  int              `json:"attempts"`
	Remaining int              `json:"remaining"`
	Secret    string           `json:"secret,omitempty"` // terminal states only
}

// handleGuess applies one guess to a stored session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var out guessRes
	err := s.store.With(r.Context(), chi.URLParam(r, "id"), func(sess *game.Session) error {
		marks, gerr := sess.Guess(req.Guess)
		if gerr != nil {
			return gerr
		}
		out = snapshotGuess(sess, marks)
		return nil
	})

	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found")
		return
	case errors.Is(err, game.ErrSessionOver):
		respondError(w, http.StatusConflict, "session_over")
		return
	case errors.Is(err, game.ErrInvalidGuess):
		guessesTotal.WithLabelValues("rejected").Inc()
		respondInvalidGuess(w, err)
		return
	case err != nil:
		log.Error().Err(err).Msg("apply guess")
		respondError(w, http.StatusInternalServerError, "guess_failed")
		return
	}

	guessesTotal.WithLabelValues("scored").Inc()
	if out.State.Terminal() {
		sessionsFinished.WithLabelValues(string(out.State)).Inc()
	}
	_ = json.NewEncoder(w).Encode(out)
}

// sessionRes is the state snapshot for GET /session/{id}.
type sessionRes struct {
	SessionID   string             `json:"sessionId"`
	State       game.State         `json:"state"`
	Length      int                `json:"length"`
	MaxAttempts int                `json:"maxAttempts"`
	Attempts    int                `json:"attempts"`
	Remaining   int                `json:"remaining"`
	Daily       bool               `json:"daily"`
	History     []game.GuessResult `json:"history"`
	Secret      string             `json:"secret,omitempty"` // terminal states only
}

// handleGetSession returns the full snapshot of a stored session.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var out sessionRes
	err := s.store.With(r.Context(), id, func(sess *game.Session) error {
		out = snapshotSession(id, sess)
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found")
		return
	}

	_ = json.NewEncoder(w).Encode(out)
}

// abortRes is the post-mortem for DELETE /session/{id}.
type abortRes struct {
	State  game.State `json:"state"`
	Secret string     `json:"secret"`
}

// handleAbortSession aborts (if still running) and forgets a session,
// revealing the secret on the way out.
func (s *Server) handleAbortSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var out abortRes
	err := s.store.With(r.Context(), id, func(sess *game.Session) error {
		wasRunning := sess.State() == game.StateInProgress
		sess.Abort()
		if wasRunning {
			sessionsFinished.WithLabelValues(string(game.StateAborted)).Inc()
		}
		secret, _ := sess.Secret()
		out = abortRes{State: sess.State(), Secret: secret}
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found")
		return
	}

	_ = s.store.Delete(r.Context(), id)
	_ = json.NewEncoder(w).Encode(out)
}

// ------------------------------ helpers --------------------------------------

// snapshotGuess captures the response for a scored guess. The secret rides
// along only once the session is terminal.
func snapshotGuess(sess *game.Session, marks game.GuessResult) guessRes {
	out := guessRes{
		Marks:     marks,
		State:     sess.State(),
		Attempts:  sess.Attempts(),
		Remaining: sess.Remaining(),
	}
	if secret, ok := sess.Secret(); ok {
		out.Secret = secret
	}
	return out
}

// snapshotSession captures the full state for GET /session/{id}.
func snapshotSession(id string, sess *game.Session) sessionRes {
	out := sessionRes{
		SessionID:   id,
		State:       sess.State(),
		Length:      sess.WordLength(),
		MaxAttempts: sess.MaxAttempts(),
		Attempts:    sess.Attempts(),
		Remaining:   sess.Remaining(),
		Daily:       sess.Daily(),
		History:     sess.History(),
	}
	if secret, ok := sess.Secret(); ok {
		out.Secret = secret
	}
	return out
}

// respondError writes a JSON error payload with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// respondInvalidGuess writes the 422 payload for a rejected guess, naming
// the precise reason.
func respondInvalidGuess(w http.ResponseWriter, err error) {
	var reason string
	switch {
	case errors.Is(err, game.ErrWrongLength):
		reason = "wrong_length"
	case errors.Is(err, game.ErrNotAlphabetic):
		reason = "not_alphabetic"
	default:
		reason = "invalid"
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_guess", "reason": reason})
}
