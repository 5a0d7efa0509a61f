package program

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lgznml/WorkoutTracker/internal/auth"
	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
	"github.com/lgznml/WorkoutTracker/pkg"
)

type configStore interface {
	Get(ctx context.Context, username, key string) (string, error)
	Set(ctx context.Context, username, key, value string) error
}

type weekResolver interface {
	WeekFor(ctx context.Context, username string, targetDate time.Time) int
}

type Handler struct {
	config   configStore
	resolver weekResolver
}

func NewHandler(config configStore, resolver weekResolver) *Handler {
	return &Handler{
		config:   config,
		resolver: resolver,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/program/config", handler.handleGetConfig).Methods("GET", "OPTIONS").Name("get-program-config")
	router.HandleFunc("/program/config", handler.handleSetConfig).Methods("POST", "OPTIONS").Name("set-program-config")
	router.HandleFunc("/program/week", handler.handleGetWeek).Methods("GET", "OPTIONS").Name("get-program-week")
}

type configResponse struct {
	StartDate string `json:"startDate"`
}

func (handler *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "programHandler.getConfig")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	startDate, err := handler.config.Get(ctx, username, StartDateKey)
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		log.Errorf("get program config for [%s]: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(configResponse{StartDate: startDate})
	if err != nil {
		log.Errorf("marshal program config response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (handler *Handler) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "programHandler.setConfig")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req configResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("set program config, unmarshal json params: %s", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if _, err := time.Parse(DateLayout, req.StartDate); err != nil {
		http.Error(w, "error, invalid start date", http.StatusBadRequest)
		return
	}

	if err := handler.config.Set(ctx, username, StartDateKey, req.StartDate); err != nil {
		log.Errorf("set program config for [%s]: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "updated")
}

type weekResponse struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Week    int    `json:"week"`
}

// handleGetWeek resolves the program week for a date (today when the
// date query param is omitted).
func (handler *Handler) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "programHandler.getWeek")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	targetDate := time.Now()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.Parse(DateLayout, dateParam)
		if err != nil {
			http.Error(w, "error, invalid date", http.StatusBadRequest)
			return
		}
		targetDate = parsed
	}

	respBytes, err := json.Marshal(weekResponse{
		Date:    targetDate.Format(DateLayout),
		Weekday: WeekdayLabel(targetDate),
		Week:    handler.resolver.WeekFor(ctx, username, targetDate),
	})
	if err != nil {
		log.Errorf("marshal program week response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
