package bodymetrics

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lgznml/WorkoutTracker/internal/auth"
	"github.com/lgznml/WorkoutTracker/internal/program"
	"github.com/lgznml/WorkoutTracker/internal/telemetry/metrics"
	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
	"github.com/lgznml/WorkoutTracker/pkg"
)

type metricsRepo interface {
	Upsert(ctx context.Context, username string, entry Entry) error
	List(ctx context.Context, username string) ([]Entry, error)
}

type Handler struct {
	repo           metricsRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo metricsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/bodymetrics", handler.handleList).Methods("GET", "OPTIONS").Name("list-body-metrics")
	router.HandleFunc("/bodymetrics", handler.handleSave).Methods("POST", "OPTIONS").Name("save-body-metric")
	router.HandleFunc("/bodymetrics/series", handler.handleSeries).Methods("GET", "OPTIONS").Name("body-metrics-series")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "bodymetricsHandler.list")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	entries, err := handler.repo.List(ctx, username)
	if err != nil {
		log.Errorf("list body metrics for [%s]: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	entriesJson, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("marshal body metrics: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, entriesJson)
}

func (handler *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "bodymetricsHandler.save")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Errorf("save body metric, unmarshal json params: %s", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if _, err := time.Parse(program.DateLayout, entry.Date); err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Upsert(ctx, username, entry); err != nil {
		log.Errorf("save body metric for [%s]: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterBodyMetricsSaved.Inc()
	pkg.WriteResponse(w, pkg.ContentType.Text, "saved", http.StatusCreated)
}

// handleSeries returns the numeric chart series. Values that fail to
// parse are dropped from their series only, the raw list keeps them.
func (handler *Handler) handleSeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "bodymetricsHandler.series")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	entries, err := handler.repo.List(ctx, username)
	if err != nil {
		log.Errorf("body metrics series for [%s]: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	series := Series{
		Weight:   []SeriesPoint{},
		Calories: []SeriesPoint{},
	}
	for _, entry := range entries {
		if weight, err := pkg.ParseKilos(entry.Weight); err == nil {
			series.Weight = append(series.Weight, SeriesPoint{Date: entry.Date, Value: weight})
		}
		if calories, provided, err := pkg.ParseOptionalFloat(entry.Calories); err == nil && provided {
			series.Calories = append(series.Calories, SeriesPoint{Date: entry.Date, Value: calories})
		}
	}

	seriesJson, err := json.Marshal(series)
	if err != nil {
		log.Errorf("marshal body metrics series: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, seriesJson)
}
