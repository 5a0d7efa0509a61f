package plan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
)

// Repo persists one weekly template per user, one row per non-empty
// weekday. Saving replaces the user's rows inside a single transaction
// so a failed write never leaves a half-deleted template behind.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, username string) (_ Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plan.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT weekday, exercises FROM workout_template WHERE username = $1;`,
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p := New()
	for rows.Next() {
		var (
			weekday       string
			exercisesJson []byte
		)
		if err := rows.Scan(&weekday, &exercisesJson); err != nil {
			return nil, err
		}

		var exercises []Exercise
		if err := json.Unmarshal(exercisesJson, &exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises for [%s]: %w", weekday, err)
		}
		p[weekday] = exercises
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	p.Normalize()
	return p, nil
}

// Save replaces the stored template of one user with the given plan.
// Only this user's rows are touched, and weekdays without exercises are
// not written at all.
func (r *Repo) Save(ctx context.Context, username string, p Plan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plan.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(
		ctx,
		`DELETE FROM workout_template WHERE username = $1;`,
		username,
	); err != nil {
		return fmt.Errorf("delete previous template: %w", err)
	}

	for day, exercises := range p {
		if len(exercises) == 0 {
			continue
		}

		exercisesJson, err := json.Marshal(exercises)
		if err != nil {
			return fmt.Errorf("marshal exercises for [%s]: %w", day, err)
		}

		if _, err := tx.Exec(
			ctx,
			`INSERT INTO workout_template (username, weekday, exercises) VALUES ($1, $2, $3);`,
			username, day, exercisesJson,
		); err != nil {
			return fmt.Errorf("insert template row for [%s]: %w", day, err)
		}
	}

	return tx.Commit(ctx)
}
