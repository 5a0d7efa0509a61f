package program

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
)

var ErrConfigNotFound = errors.New("config entry not found")

// ConfigRepo stores per-user program settings as flat key/value rows.
type ConfigRepo struct {
	db *pgxpool.Pool
}

func NewConfigRepo(db *pgxpool.Pool) *ConfigRepo {
	return &ConfigRepo{
		db: db,
	}
}

func (r *ConfigRepo) Get(ctx context.Context, username, key string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programConfig.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var value string
	err = r.db.QueryRow(
		ctx,
		`SELECT value FROM program_config WHERE username = $1 AND key = $2;`,
		username, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrConfigNotFound
		}
		return "", err
	}

	return value, nil
}

func (r *ConfigRepo) Set(ctx context.Context, username, key, value string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programConfig.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO program_config (username, key, value)
			VALUES ($1, $2, $3)
			ON CONFLICT (username, key) DO UPDATE SET value = EXCLUDED.value;`,
		username, key, value,
	)
	return err
}
