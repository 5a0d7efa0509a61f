package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
)

var ErrDeviceNotFound = errors.New("device not found")

type DevicesRepo struct {
	db *pgxpool.Pool
}

func NewDevicesRepo(db *pgxpool.Pool) *DevicesRepo {
	return &DevicesRepo{
		db: db,
	}
}

func (r *DevicesRepo) Get(ctx context.Context, deviceID string) (_ *DeviceMapping, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.devices.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var mapping DeviceMapping
	err = r.db.QueryRow(
		ctx,
		`SELECT device_id, last_username, last_login_date, auto_login_enabled
			FROM devices WHERE device_id = $1;`,
		deviceID,
	).Scan(&mapping.DeviceID, &mapping.LastUsername, &mapping.LastLoginDate, &mapping.AutoLoginEnabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	return &mapping, nil
}

// Upsert writes the device mapping for this device, replacing any previous
// user it pointed to.
func (r *DevicesRepo) Upsert(ctx context.Context, mapping DeviceMapping) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.devices.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO devices (device_id, last_username, last_login_date, auto_login_enabled)
			VALUES ($1, $2, $3, $4)
		ON CONFLICT (device_id) DO UPDATE SET
			last_username = EXCLUDED.last_username,
			last_login_date = EXCLUDED.last_login_date,
			auto_login_enabled = EXCLUDED.auto_login_enabled;`,
		mapping.DeviceID, mapping.LastUsername, mapping.LastLoginDate, mapping.AutoLoginEnabled,
	)
	return err
}

func (r *DevicesRepo) SetAutoLogin(ctx context.Context, deviceID string, enabled bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.devices.setAutoLogin")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE devices SET auto_login_enabled = $1 WHERE device_id = $2;`,
		enabled, deviceID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDeviceNotFound
	}
	return nil
}
