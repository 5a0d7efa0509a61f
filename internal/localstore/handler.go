package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lgznml/WorkoutTracker/internal/auth"
	"github.com/lgznml/WorkoutTracker/internal/plan"
	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
	"github.com/lgznml/WorkoutTracker/internal/trainlog"
	"github.com/lgznml/WorkoutTracker/pkg"
)

type planStore interface {
	Get(ctx context.Context, username string) (plan.Plan, error)
	Save(ctx context.Context, username string, p plan.Plan) error
}

type sessionsStore interface {
	List(ctx context.Context, username string) ([]trainlog.Session, error)
	Upsert(ctx context.Context, username string, session trainlog.Session) error
}

// Handler moves a user's data between the database and the on-disk
// snapshot format used by the single-user offline version.
type Handler struct {
	plans    planStore
	sessions sessionsStore
	store    *Store
}

func NewHandler(plans planStore, sessions sessionsStore, store *Store) *Handler {
	return &Handler{
		plans:    plans,
		sessions: sessions,
		store:    store,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/export", handler.handleExport).Methods("GET").Name("export")
	router.HandleFunc("/import", handler.handleImport).Methods("POST").Name("import")
}

func (handler *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "localstore.export")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	template, err := handler.plans.Get(ctx, username)
	if err != nil {
		log.Errorf("export for %s, get plan: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	history, err := handler.sessions.List(ctx, username)
	if err != nil {
		log.Errorf("export for %s, list sessions: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []trainlog.Session{}
	}

	doc := Document{
		Template: template,
		History:  history,
	}
	if err := handler.store.Save(username, doc); err != nil {
		log.Errorf("export for %s, save document: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	docJson, err := json.Marshal(doc)
	if err != nil {
		log.Errorf("export for %s, marshal document: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, docJson)
}

func (handler *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "localstore.import")
	defer span.End()

	username, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var doc Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Warnf("import for %s, decode document: %s", username, err)
		http.Error(w, "invalid document", http.StatusBadRequest)
		return
	}

	if doc.Template == nil {
		doc.Template = plan.New()
	}
	doc.Template.Normalize()
	if err := handler.plans.Save(ctx, username, doc.Template); err != nil {
		log.Errorf("import for %s, save plan: %s", username, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	imported := 0
	for _, session := range doc.History {
		if session.Date == "" {
			continue
		}
		if session.Exercises == nil {
			session.Exercises = []trainlog.Entry{}
		}
		if err := handler.sessions.Upsert(ctx, username, session); err != nil {
			log.Errorf("import for %s, upsert session %s: %s", username, session.Date, err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		imported++
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"importedSessions":%d}`, imported))
}
