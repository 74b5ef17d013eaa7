package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/trogers1052/lumber-futures/internal/chart"
	"github.com/trogers1052/lumber-futures/internal/models"
)

// PriceStore defines the read operations the handlers need
type PriceStore interface {
	GetAllPriceRecords(ctx context.Context) ([]models.PriceRecord, error)
	ComputeExtremes(ctx context.Context) (models.SeriesSummary, error)
	Ping(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store     PriceStore
	chartOpts chart.Options
	pages     *pageSet
	logger    zerolog.Logger
}

// NewHandler creates a new Handler
func NewHandler(store PriceStore, chartOpts chart.Options, logger zerolog.Logger) (*Handler, error) {
	pages, err := loadPages()
	if err != nil {
		return nil, err
	}
	return &Handler{
		store:     store,
		chartOpts: chartOpts,
		pages:     pages,
		logger:    logger,
	}, nil
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home.html", nil)
}

// About handles GET /about
func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "about.html", nil)
}

// ViewData handles GET /view
func (h *Handler) ViewData(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.GetAllPriceRecords(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, "view_data.html", struct{ Records []models.PriceRecord }{records})
}

// ViewGraph handles GET /graph. Rows and extremes come from one fetch.
func (h *Handler) ViewGraph(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.GetAllPriceRecords(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	figure, err := json.Marshal(chart.BuildSeries(records, h.chartOpts))
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, "view_graph.html", struct {
		GraphJSON template.JS
		Extremes  []extremeRow
		Series    []string
	}{
		GraphJSON: template.JS(figure),
		Extremes:  extremeRows(chart.Summarize(records)),
		Series:    chart.SeriesNames(),
	})
}

// GraphSVG handles GET /graph.svg?series=<name>
func (h *Handler) GraphSVG(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.GetAllPriceRecords(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = chart.RenderSVG(&buf, chart.BuildSeries(records, h.chartOpts), r.URL.Query().Get("series"))
	switch {
	case errors.Is(err, chart.ErrUnknownSeries):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, chart.ErrNoData):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// GetPrices handles GET /api/v1/prices
func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.GetAllPriceRecords(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// GetExtremes handles GET /api/v1/extremes
func (h *Handler) GetExtremes(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.ComputeExtremes(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// GetChart handles GET /api/v1/chart
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.GetAllPriceRecords(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, chart.BuildSeries(records, h.chartOpts))
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("health check failed")
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data interface{}) {
	var buf bytes.Buffer
	if err := h.pages.execute(&buf, page, data); err != nil {
		h.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// serverError logs a per-request failure and answers 500; nothing is retried.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error().
		Err(err).
		Str("path", r.URL.Path).
		Str("request_id", RequestIDFromContext(r.Context())).
		Msg("request failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
