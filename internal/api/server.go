package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cryptookie/internal/auth"
	"cryptookie/internal/config"
	"cryptookie/internal/game"
	"cryptookie/internal/store"
)

type Server struct {
	cfg   config.APIConfig
	log   *slog.Logger
	store store.Store
	mux   *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, st store.Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:   cfg,
		log:   logger,
		store: st,
		mux:   chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Get("/player/{username}", s.handlePlayer)
		r.Post("/save", s.handleSave)
	})
}

// handleLogin verifies the password for a known player and registers a fresh
// player with the starter record otherwise.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	player, err := s.store.Get(r.Context(), in.Username)
	if errors.Is(err, store.ErrNotFound) {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		player = store.Player{Password: hash, Record: game.NewRecord()}
		if err := s.store.Put(r.Context(), in.Username, player); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.log.Info("registered player", "username", in.Username)
		writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "player": player.Record})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := auth.VerifyPassword(player.Password, in.Password); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "player": player.Record})
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	player, err := s.store.Get(r.Context(), username)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"player": player.Record})
}

// handleSave replaces a known player's record, keeping the stored password.
// On failure the stored record is untouched; the client retries on its next
// autosave.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string      `json:"username"`
		Player   game.Record `json:"player"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		writeError(w, http.StatusBadRequest, "missing username")
		return
	}

	existing, err := s.store.Get(r.Context(), in.Username)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	existing.Record = in.Player
	if err := s.store.Put(r.Context(), in.Username, existing); err != nil {
		s.log.Error("save failed", "username", in.Username, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrWrongPassword):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
