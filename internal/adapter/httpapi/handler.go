package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"newsfeed/internal/domain/model"
	"newsfeed/internal/domain/ports"
)

// Feed is the controller surface the HTTP layer drives.
type Feed interface {
	Snapshot() model.FeedState
	SetLocale(locale model.Locale) error
	SetCategory(category model.Category) error
	Refresh()
	RefreshInterval() time.Duration
}

type handler struct {
	feed   Feed
	logger ports.Logger
}

// maxBodyBytes bounds the JSON bodies of the setter endpoints.
const maxBodyBytes = 1 << 10

type errorResponse struct {
	Error string `json:"error"`
}

type localeInfo struct {
	Code      model.Locale    `json:"code"`
	Name      string          `json:"name"`
	Native    string          `json:"native"`
	Direction model.Direction `json:"direction"`
}

type metaResponse struct {
	Locales         []localeInfo     `json:"locales"`
	Categories      []model.Category `json:"categories"`
	Sources         []string         `json:"sources"`
	RefreshInterval string           `json:"refreshInterval"`
}

// NewRouter exposes the feed state and its triggers over HTTP.
func NewRouter(feed Feed, logger ports.Logger) http.Handler {
	h := &handler{feed: feed, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/meta", h.handleMeta)
		r.Get("/feed", h.handleFeed)
		r.Put("/feed/locale", h.handleSetLocale)
		r.Put("/feed/category", h.handleSetCategory)
		r.Post("/feed/refresh", h.handleRefresh)
	})
	return r
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleMeta(w http.ResponseWriter, _ *http.Request) {
	locales := make([]localeInfo, 0, len(model.Locales))
	for _, l := range model.Locales {
		locales = append(locales, localeInfo{
			Code:      l,
			Name:      l.LanguageName(),
			Native:    l.NativeName(),
			Direction: l.Direction(),
		})
	}

	writeJSON(w, http.StatusOK, metaResponse{
		Locales:         locales,
		Categories:      model.Categories,
		Sources:         model.SupportedSources,
		RefreshInterval: h.feed.RefreshInterval().String(),
	})
}

func (h *handler) handleFeed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.feed.Snapshot())
}

func (h *handler) handleSetLocale(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Locale string `json:"locale"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	locale, err := model.ParseLocale(body.Locale)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.feed.SetLocale(locale); err != nil {
		h.writeFeedError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, h.feed.Snapshot())
}

func (h *handler) handleSetCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Category string `json:"category"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	category, err := model.ParseCategory(body.Category)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.feed.SetCategory(category); err != nil {
		h.writeFeedError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, h.feed.Snapshot())
}

func (h *handler) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	h.feed.Refresh()
	writeJSON(w, http.StatusAccepted, h.feed.Snapshot())
}

func (h *handler) writeFeedError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, model.ErrUnknownLocale) || errors.Is(err, model.ErrUnknownCategory) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if h.logger != nil {
		h.logger.Error(r.Context(), "feed update failed", "error", err, "requestID", middleware.GetReqID(r.Context()))
	}
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
