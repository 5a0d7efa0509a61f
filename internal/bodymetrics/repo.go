package bodymetrics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert writes one day's measurement, a later entry for the same date
// replaces the earlier one.
func (r *Repo) Upsert(ctx context.Context, username string, entry Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodymetrics.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO weight_calories (username, date, weight, calories)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (username, date) DO UPDATE SET
				weight = EXCLUDED.weight,
				calories = EXCLUDED.calories;`,
		username, entry.Date, entry.Weight, entry.Calories,
	)
	return err
}

// List returns all measurements of one user, oldest first.
func (r *Repo) List(ctx context.Context, username string) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodymetrics.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT date, weight, calories
			FROM weight_calories
			WHERE username = $1
			ORDER BY date ASC;`,
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Date, &entry.Weight, &entry.Calories); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
