package plan

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lgznml/WorkoutTracker/internal/auth"
	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
	"github.com/lgznml/WorkoutTracker/pkg"
)

type store interface {
	Get(ctx context.Context, username string) (Plan, error)
	Save(ctx context.Context, username string, p Plan) error
}

type Handler struct {
	repo store
}

func NewHandler(repo store) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/plan", handler.handleGet).Methods("GET", "OPTIONS").Name("get-plan")
	router.HandleFunc("/plan", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("update-plan")
	router.HandleFunc("/plan/{day}/exercises", handler.handleAddExercise).Methods("POST", "OPTIONS").Name("add-plan-exercise")
	router.HandleFunc("/plan/{day}/exercises/{index}", handler.handleDeleteExercise).Methods("DELETE", "OPTIONS").Name("delete-plan-exercise")
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "planHandler.get")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	p, err := handler.repo.Get(ctx, username)
	if err != nil {
		log.Errorf("get plan for [%s]: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	planJson, err := json.Marshal(p)
	if err != nil {
		log.Errorf("marshal plan: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, planJson)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "planHandler.update")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var p Plan
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		log.Errorf("update plan, unmarshal json params: %s", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	p.Normalize()

	if err := handler.repo.Save(ctx, username, p); err != nil {
		log.Errorf("save plan for [%s]: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	log.Tracef("plan updated for [%s]", username)
	pkg.WriteTextResponseOK(w, "updated")
}

func (handler *Handler) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "planHandler.addExercise")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	day := mux.Vars(r)["day"]

	// an empty body adds a blank slot
	exercise := NewExercise()
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil && !errors.Is(err, io.EOF) {
		log.Errorf("add exercise, unmarshal json params: %s", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	p, err := handler.repo.Get(ctx, username)
	if err != nil {
		log.Errorf("add exercise, get plan for [%s]: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := p.AddExercise(day, exercise); err != nil {
		http.Error(w, "error, invalid weekday", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Save(ctx, username, p); err != nil {
		log.Errorf("add exercise, save plan for [%s]: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponse(w, pkg.ContentType.Text, "added", http.StatusCreated)
}

func (handler *Handler) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "planHandler.deleteExercise")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	day := vars["day"]
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		http.Error(w, "error, invalid exercise index", http.StatusBadRequest)
		return
	}

	p, err := handler.repo.Get(ctx, username)
	if err != nil {
		log.Errorf("delete exercise, get plan for [%s]: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := p.DeleteExercise(day, index); err != nil {
		switch {
		case errors.Is(err, ErrInvalidWeekday):
			http.Error(w, "error, invalid weekday", http.StatusBadRequest)
		case errors.Is(err, ErrIndexOutOfRange):
			http.Error(w, "error, exercise index out of range", http.StatusBadRequest)
		default:
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	if err := handler.repo.Save(ctx, username, p); err != nil {
		log.Errorf("delete exercise, save plan for [%s]: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}
