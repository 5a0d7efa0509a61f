package trainlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
)

var ErrSessionNotFound = errors.New("workout session not found")

// Repo persists workout sessions, one row per (user, date).
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, username, date string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		session       Session
		exercisesJson []byte
	)
	err = r.db.QueryRow(
		ctx,
		`SELECT date, weekday, program_week, exercises
			FROM workout_history
			WHERE username = $1 AND date = $2;`,
		username, date,
	).Scan(&session.Date, &session.Weekday, &session.ProgramWeek, &exercisesJson)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(exercisesJson, &session.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal exercises for [%s]: %w", date, err)
	}

	return &session, nil
}

// Upsert writes a session, replacing any previous one for the same date.
func (r *Repo) Upsert(ctx context.Context, username string, session Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercisesJson, err := json.Marshal(session.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_history (username, date, weekday, program_week, exercises)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (username, date) DO UPDATE SET
				weekday = EXCLUDED.weekday,
				program_week = EXCLUDED.program_week,
				exercises = EXCLUDED.exercises;`,
		username, session.Date, session.Weekday, session.ProgramWeek, exercisesJson,
	)
	return err
}

// List returns all sessions of one user, oldest first.
func (r *Repo) List(ctx context.Context, username string) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainlog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT date, weekday, program_week, exercises
			FROM workout_history
			WHERE username = $1
			ORDER BY date ASC;`,
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			session       Session
			exercisesJson []byte
		)
		if err := rows.Scan(&session.Date, &session.Weekday, &session.ProgramWeek, &exercisesJson); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(exercisesJson, &session.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises for [%s]: %w", session.Date, err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
