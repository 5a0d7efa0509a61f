package sheetstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/lgznml/WorkoutTracker/internal/program"
	"github.com/lgznml/WorkoutTracker/internal/telemetry/metrics"
	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
)

// Mirror copies the primary store into the legacy spreadsheet so the old
// sheet stays a readable, offline-friendly backup. Partitioned tables go
// through the per-user replace protocol, global tables are rewritten
// whole.
type Mirror struct {
	db             *pgxpool.Pool
	provider       WorksheetProvider
	metricsManager *metrics.Manager
}

func NewMirror(db *pgxpool.Pool, provider WorksheetProvider, metricsManager *metrics.Manager) *Mirror {
	return &Mirror{
		db:             db,
		provider:       provider,
		metricsManager: metricsManager,
	}
}

func (m *Mirror) Backup(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sheetstore.mirror.backup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	defer func(begin time.Time) {
		m.metricsManager.HistSheetsBackupDuration.Observe(time.Since(begin).Seconds())
	}(time.Now())

	for _, table := range Tables {
		if err := m.backupTable(ctx, table); err != nil {
			return fmt.Errorf("backup table [%s]: %w", table.Name, err)
		}
		log.Debugf("sheets mirror: table [%s] done", table.Name)
	}

	m.metricsManager.CounterSheetsBackups.Inc()
	return nil
}

func (m *Mirror) backupTable(ctx context.Context, table Table) error {
	rows, err := m.tableRows(ctx, table)
	if err != nil {
		return err
	}

	ws, err := m.provider.Worksheet(ctx, table)
	if err != nil {
		return err
	}

	if !table.Partitioned {
		return ReplaceAllRows(ctx, ws, table, rows)
	}

	byUser := map[string][][]string{}
	for _, row := range rows {
		byUser[row[0]] = append(byUser[row[0]], row)
	}
	for username, userRows := range byUser {
		if err := ReplaceUserRows(ctx, ws, table, username, userRows); err != nil {
			return fmt.Errorf("replace rows of [%s]: %w", username, err)
		}
	}
	return nil
}

func (m *Mirror) tableRows(ctx context.Context, table Table) ([][]string, error) {
	switch table.Name {
	case TemplateTable.Name:
		return m.templateRows(ctx)
	case HistoryTable.Name:
		return m.historyRows(ctx)
	case ConfigTable.Name:
		return m.configRows(ctx)
	case WeightCaloriesTable.Name:
		return m.weightCaloriesRows(ctx)
	case UsersTable.Name:
		return m.userRows(ctx)
	case DevicesTable.Name:
		return m.deviceRows(ctx)
	default:
		return nil, fmt.Errorf("unknown table: %s", table.Name)
	}
}

func (m *Mirror) templateRows(ctx context.Context) ([][]string, error) {
	rows, err := m.db.Query(
		ctx,
		`SELECT username, weekday, exercises FROM workout_template ORDER BY username, weekday;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		var (
			username, weekday string
			exercisesJson     []byte
		)
		if err := rows.Scan(&username, &weekday, &exercisesJson); err != nil {
			return nil, err
		}
		result = append(result, []string{username, weekday, string(exercisesJson)})
	}
	return result, rows.Err()
}

func (m *Mirror) historyRows(ctx context.Context) ([][]string, error) {
	rows, err := m.db.Query(
		ctx,
		`SELECT username, date, weekday, program_week, exercises
			FROM workout_history ORDER BY username, date;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		var (
			username, date, weekday string
			programWeek             int
			exercisesJson           []byte
		)
		if err := rows.Scan(&username, &date, &weekday, &programWeek, &exercisesJson); err != nil {
			return nil, err
		}
		result = append(result, []string{
			username, date, weekday, strconv.Itoa(programWeek), string(exercisesJson),
		})
	}
	return result, rows.Err()
}

func (m *Mirror) configRows(ctx context.Context) ([][]string, error) {
	rows, err := m.db.Query(
		ctx,
		`SELECT username, key, value FROM program_config ORDER BY username, key;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		var username, key, value string
		if err := rows.Scan(&username, &key, &value); err != nil {
			return nil, err
		}
		result = append(result, []string{username, key, value})
	}
	return result, rows.Err()
}

func (m *Mirror) weightCaloriesRows(ctx context.Context) ([][]string, error) {
	rows, err := m.db.Query(
		ctx,
		`SELECT username, date, weight, calories FROM weight_calories ORDER BY username, date;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		var username, date, weight, calories string
		if err := rows.Scan(&username, &date, &weight, &calories); err != nil {
			return nil, err
		}
		result = append(result, []string{username, date, weight, calories})
	}
	return result, rows.Err()
}

func (m *Mirror) userRows(ctx context.Context) ([][]string, error) {
	rows, err := m.db.Query(
		ctx,
		`SELECT username, password, full_name FROM users ORDER BY username;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		var username, password, fullName string
		if err := rows.Scan(&username, &password, &fullName); err != nil {
			return nil, err
		}
		result = append(result, []string{username, password, fullName})
	}
	return result, rows.Err()
}

func (m *Mirror) deviceRows(ctx context.Context) ([][]string, error) {
	rows, err := m.db.Query(
		ctx,
		`SELECT device_id, last_username, last_login_date, auto_login_enabled
			FROM devices ORDER BY device_id;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		var (
			deviceID, lastUsername string
			lastLoginDate          time.Time
			autoLoginEnabled       bool
		)
		if err := rows.Scan(&deviceID, &lastUsername, &lastLoginDate, &autoLoginEnabled); err != nil {
			return nil, err
		}
		result = append(result, []string{
			deviceID,
			lastUsername,
			lastLoginDate.Format(program.DateLayout),
			strconv.FormatBool(autoLoginEnabled),
		})
	}
	return result, rows.Err()
}
