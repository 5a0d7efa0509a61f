package trainlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lgznml/WorkoutTracker/internal/auth"
	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
	"github.com/lgznml/WorkoutTracker/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=trainlog

type workoutLog interface {
	SaveSession(ctx context.Context, username string, session Session) (*Session, error)
	SaveExerciseIncremental(ctx context.Context, username string, req IncrementalSaveRequest) (*Session, error)
	Sessions(ctx context.Context, username string) ([]Session, error)
	Session(ctx context.Context, username, date string) (*Session, error)
	ExerciseHistory(ctx context.Context, username, exerciseName string) ([]HistoryEntry, error)
	LastRecordedWeight(ctx context.Context, username, exerciseName string) (string, error)
	Progression(ctx context.Context, username, exerciseName string) (*Progression, error)
}

type Handler struct {
	service workoutLog
}

func NewHandler(service workoutLog) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/trainlog/sessions", handler.handleList).Methods("GET", "OPTIONS").Name("list-sessions")
	router.HandleFunc("/trainlog/sessions", handler.handleSaveSession).Methods("POST", "OPTIONS").Name("save-session")
	router.HandleFunc("/trainlog/sessions/exercise", handler.handleSaveExercise).Methods("POST", "OPTIONS").Name("save-session-exercise")
	router.HandleFunc("/trainlog/sessions/{date}", handler.handleGetSession).Methods("GET", "OPTIONS").Name("get-session")
	router.HandleFunc("/trainlog/history/{exercise}", handler.handleHistory).Methods("GET", "OPTIONS").Name("exercise-history")
	router.HandleFunc("/trainlog/lastweight/{exercise}", handler.handleLastWeight).Methods("GET", "OPTIONS").Name("exercise-last-weight")
	router.HandleFunc("/trainlog/progression/{exercise}", handler.handleProgression).Methods("GET", "OPTIONS").Name("exercise-progression")
}

func (handler *Handler) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainlogHandler.saveSession")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var session Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Errorf("save session, unmarshal json params: %s", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	saved, err := handler.service.SaveSession(ctx, username, session)
	if err != nil {
		handler.writeServiceError(w, username, "save session", err)
		return
	}

	handler.writeSessionJSON(w, saved, http.StatusCreated)
}

func (handler *Handler) handleSaveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainlogHandler.saveExercise")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req IncrementalSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("save exercise, unmarshal json params: %s", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	session, err := handler.service.SaveExerciseIncremental(ctx, username, req)
	if err != nil {
		handler.writeServiceError(w, username, "save exercise", err)
		return
	}

	handler.writeSessionJSON(w, session, http.StatusOK)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainlogHandler.list")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	sessions, err := handler.service.Sessions(ctx, username)
	if err != nil {
		log.Errorf("list sessions for [%s]: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []Session{}
	}

	sessionsJson, err := json.Marshal(sessions)
	if err != nil {
		log.Errorf("marshal sessions: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, sessionsJson)
}

func (handler *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainlogHandler.getSession")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	date := mux.Vars(r)["date"]
	session, err := handler.service.Session(ctx, username, date)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("get session [%s] for [%s]: %s", date, username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.writeSessionJSON(w, session, http.StatusOK)
}

func (handler *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainlogHandler.history")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exerciseName := mux.Vars(r)["exercise"]
	history, err := handler.service.ExerciseHistory(ctx, username, exerciseName)
	if err != nil {
		log.Errorf("exercise history [%s] for [%s]: %s", exerciseName, username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []HistoryEntry{}
	}

	historyJson, err := json.Marshal(history)
	if err != nil {
		log.Errorf("marshal exercise history: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, historyJson)
}

func (handler *Handler) handleLastWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainlogHandler.lastWeight")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exerciseName := mux.Vars(r)["exercise"]
	weight, err := handler.service.LastRecordedWeight(ctx, username, exerciseName)
	if err != nil {
		if errors.Is(err, ErrNoWeightFound) {
			http.Error(w, "no recorded weight", http.StatusNotFound)
			return
		}
		log.Errorf("last weight [%s] for [%s]: %s", exerciseName, username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"weight":%q}`, weight))
}

func (handler *Handler) handleProgression(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainlogHandler.progression")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exerciseName := mux.Vars(r)["exercise"]
	progression, err := handler.service.Progression(ctx, username, exerciseName)
	if err != nil {
		log.Errorf("progression [%s] for [%s]: %s", exerciseName, username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	progressionJson, err := json.Marshal(progression)
	if err != nil {
		log.Errorf("marshal progression: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, progressionJson)
}

func (handler *Handler) writeSessionJSON(w http.ResponseWriter, session *Session, statusCode int) {
	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("marshal session: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, statusCode)
}

func (handler *Handler) writeServiceError(w http.ResponseWriter, username, action string, err error) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		http.Error(w, "error, invalid date", http.StatusBadRequest)
	case errors.Is(err, ErrInvalidWeekday):
		http.Error(w, "error, invalid weekday", http.StatusBadRequest)
	default:
		log.Errorf("%s for [%s]: %s", action, username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
