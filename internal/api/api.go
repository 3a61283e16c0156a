// Package api exposes the conversational service over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/manjuraavi/linkedin-career-coach/internal/coach"
	"github.com/manjuraavi/linkedin-career-coach/internal/scraper"
	"github.com/manjuraavi/linkedin-career-coach/internal/session"
)

// maxRequestBody bounds decoded request bodies.
const maxRequestBody = 1 << 20 // 1MB

type Handler struct {
	service *coach.Service
	store   session.Store
	logger  *zap.Logger
}

func NewHandler(service *coach.Service, store session.Store, logger *zap.Logger) *Handler {
	return &Handler{service: service, store: store, logger: logger}
}

// Router assembles the HTTP surface: the session API, liveness and metrics.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Post("/{sessionID}/chat", h.chat)
		r.Get("/{sessionID}/history", h.history)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

type createSessionRequest struct {
	ProfileURL     string `json:"profile_url"`
	JobDescription string `json:"job_description"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	Welcome   string `json:"welcome"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !h.decode(w, r, &req) {
		return
	}

	if !scraper.ValidateURL(req.ProfileURL) {
		h.writeError(w, http.StatusBadRequest, "profile_url must be a public LinkedIn profile URL")
		return
	}

	sess, err := h.service.StartSession(r.Context(), req.ProfileURL, req.JobDescription)
	if err != nil {
		h.logger.Error("starting session failed", zap.Error(err))
		h.writeError(w, http.StatusBadGateway, "could not fetch the profile")
		return
	}

	h.writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: sess.ID,
		Welcome:   sess.History[0].Content,
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req chatRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Message == "" {
		h.writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	reply, err := h.service.Chat(r.Context(), sessionID, req.Message)
	if errors.Is(err, session.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		h.logger.Error("turn failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		h.writeError(w, http.StatusInternalServerError, "turn failed")
		return
	}

	h.writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

type historyResponse struct {
	SessionID string                     `json:"session_id"`
	History   []session.Message          `json:"history"`
	Results   map[string]json.RawMessage `json:"results,omitempty"`
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := h.store.Get(r.Context(), sessionID)
	if errors.Is(err, session.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		h.logger.Error("loading session failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		h.writeError(w, http.StatusInternalServerError, "loading session failed")
		return
	}

	h.writeJSON(w, http.StatusOK, historyResponse{
		SessionID: sess.ID,
		History:   sess.History,
		Results:   sess.Results,
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encoding response failed", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
