package trainlog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lgznml/WorkoutTracker/internal/program"
	"github.com/lgznml/WorkoutTracker/internal/telemetry/metrics"
	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
	"github.com/lgznml/WorkoutTracker/pkg"
)

var (
	ErrInvalidDate    = errors.New("invalid session date")
	ErrInvalidWeekday = errors.New("invalid session weekday")
	ErrNoWeightFound  = errors.New("no recorded weight found")
)

type sessionsRepo interface {
	Get(ctx context.Context, username, date string) (*Session, error)
	Upsert(ctx context.Context, username string, session Session) error
	List(ctx context.Context, username string) ([]Session, error)
}

type weekResolver interface {
	WeekFor(ctx context.Context, username string, targetDate time.Time) int
}

// Service owns the session log rules: one session per date, one entry
// per exercise within an incrementally saved session.
type Service struct {
	repo           sessionsRepo
	weeks          weekResolver
	metricsManager *metrics.Manager
}

func NewService(repo sessionsRepo, weeks weekResolver, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		weeks:          weeks,
		metricsManager: metricsManager,
	}
}

// SaveSession stores a whole session at once, replacing anything already
// logged for that date. The program week is always computed server side
// from the session date.
func (s *Service) SaveSession(ctx context.Context, username string, session Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "trainlog.saveSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	date, err := time.Parse(program.DateLayout, session.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if session.Weekday == "" {
		session.Weekday = program.WeekdayLabel(date)
	} else if !program.IsWeekday(session.Weekday) {
		return nil, ErrInvalidWeekday
	}
	if session.Exercises == nil {
		session.Exercises = []Entry{}
	}

	session.ProgramWeek = s.weeks.WeekFor(ctx, username, date)

	if err := s.repo.Upsert(ctx, username, session); err != nil {
		return nil, fmt.Errorf("upsert session: %w", err)
	}

	s.metricsManager.CounterSessionsSaved.Inc()
	return &session, nil
}

// IncrementalSaveRequest carries one exercise to merge into the session
// of a date, creating the session on first save.
type IncrementalSaveRequest struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Entry   Entry  `json:"entry"`
}

// SaveExerciseIncremental merges one exercise entry into the session for
// the given date. An entry with the same exercise name (compared case
// insensitively) is overwritten in place, otherwise the entry is
// appended, so saving one exercise never loses its siblings.
func (s *Service) SaveExerciseIncremental(ctx context.Context, username string, req IncrementalSaveRequest) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "trainlog.saveExerciseIncremental")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	date, err := time.Parse(program.DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if req.Weekday == "" {
		req.Weekday = program.WeekdayLabel(date)
	} else if !program.IsWeekday(req.Weekday) {
		return nil, ErrInvalidWeekday
	}

	session, err := s.repo.Get(ctx, username, req.Date)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		session = &Session{
			Date:        req.Date,
			Weekday:     req.Weekday,
			ProgramWeek: s.weeks.WeekFor(ctx, username, date),
			Exercises:   []Entry{req.Entry},
		}
	case err != nil:
		return nil, fmt.Errorf("get session: %w", err)
	default:
		merged := false
		for i := range session.Exercises {
			if exerciseNamesEqual(session.Exercises[i].ExerciseName, req.Entry.ExerciseName) {
				session.Exercises[i] = req.Entry
				merged = true
				break
			}
		}
		if !merged {
			session.Exercises = append(session.Exercises, req.Entry)
		}
	}

	if err := s.repo.Upsert(ctx, username, *session); err != nil {
		return nil, fmt.Errorf("upsert session: %w", err)
	}

	s.metricsManager.CounterSessionsSaved.Inc()
	return session, nil
}

func (s *Service) Sessions(ctx context.Context, username string) ([]Session, error) {
	return s.repo.List(ctx, username)
}

func (s *Service) Session(ctx context.Context, username, date string) (*Session, error) {
	return s.repo.Get(ctx, username, date)
}

// ExerciseHistory returns every logged occurrence of an exercise across
// all sessions, oldest first. Name matching is case insensitive.
func (s *Service) ExerciseHistory(ctx context.Context, username, exerciseName string) (_ []HistoryEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "trainlog.exerciseHistory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := s.repo.List(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	var history []HistoryEntry
	for _, session := range sessions {
		for _, entry := range session.Exercises {
			if exerciseNamesEqual(entry.ExerciseName, exerciseName) {
				history = append(history, HistoryEntry{
					Date:        session.Date,
					Weekday:     session.Weekday,
					ProgramWeek: session.ProgramWeek,
					Entry:       entry,
				})
			}
		}
	}

	return history, nil
}

// LastRecordedWeight finds the most recent non-empty weight entered for
// an exercise, used only as an input placeholder hint.
func (s *Service) LastRecordedWeight(ctx context.Context, username, exerciseName string) (string, error) {
	history, err := s.ExerciseHistory(ctx, username, exerciseName)
	if err != nil {
		return "", err
	}

	for i := len(history) - 1; i >= 0; i-- {
		if weight := strings.TrimSpace(history[i].WeightUsed); weight != "" {
			return weight, nil
		}
	}
	return "", ErrNoWeightFound
}

// Progression builds the numeric weight series of an exercise. Weights
// that do not parse as kilos are skipped silently, they still show up in
// the raw history.
func (s *Service) Progression(ctx context.Context, username, exerciseName string) (*Progression, error) {
	history, err := s.ExerciseHistory(ctx, username, exerciseName)
	if err != nil {
		return nil, err
	}

	progression := &Progression{
		ExerciseName: exerciseName,
		Points:       []ProgressionPoint{},
	}
	for _, entry := range history {
		weight, err := pkg.ParseKilos(entry.WeightUsed)
		if err != nil {
			continue
		}
		progression.Points = append(progression.Points, ProgressionPoint{
			Date:   entry.Date,
			Weight: weight,
		})
	}

	if len(progression.Points) == 0 {
		return progression, nil
	}

	progression.MinWeight = progression.Points[0].Weight
	progression.MaxWeight = progression.Points[0].Weight
	for _, point := range progression.Points {
		if point.Weight < progression.MinWeight {
			progression.MinWeight = point.Weight
		}
		if point.Weight > progression.MaxWeight {
			progression.MaxWeight = point.Weight
		}
	}
	progression.CurrentWeight = progression.Points[len(progression.Points)-1].Weight
	progression.Delta = progression.CurrentWeight - progression.Points[0].Weight

	return progression, nil
}

func exerciseNamesEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
