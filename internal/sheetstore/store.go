package sheetstore

import (
	"context"
	"fmt"
)

// Worksheet is the narrow view of one tab of the mirror spreadsheet:
// read rows, append rows, delete a row by absolute index, put a header
// in front. Row index 0 is the header once one exists.
type Worksheet interface {
	Rows(ctx context.Context) ([][]string, error)
	Append(ctx context.Context, rows [][]string) error
	DeleteRow(ctx context.Context, index int) error
	InsertHeader(ctx context.Context, header []string) error
}

// WorksheetProvider resolves the worksheet of a table, creating the tab
// when it does not exist yet.
type WorksheetProvider interface {
	Worksheet(ctx context.Context, table Table) (Worksheet, error)
}

// ReplaceUserRows is the mirror save protocol for partitioned tables:
// ensure the header, collect the current user's rows, delete them
// highest index first so earlier deletions don't shift the later ones,
// then append the fresh rows. Not safe under concurrent writers, which
// is accepted for a mirror written by a single backup loop.
func ReplaceUserRows(ctx context.Context, ws Worksheet, table Table, username string, rows [][]string) error {
	existing, err := ensureHeader(ctx, ws, table)
	if err != nil {
		return err
	}

	var toDelete []int
	for i := 1; i < len(existing); i++ {
		if len(existing[i]) > 0 && existing[i][0] == username {
			toDelete = append(toDelete, i)
		}
	}
	for i := len(toDelete) - 1; i >= 0; i-- {
		if err := ws.DeleteRow(ctx, toDelete[i]); err != nil {
			return fmt.Errorf("delete row %d: %w", toDelete[i], err)
		}
	}

	if len(rows) == 0 {
		return nil
	}
	return ws.Append(ctx, rows)
}

// ReplaceAllRows rewrites a whole non-partitioned table.
func ReplaceAllRows(ctx context.Context, ws Worksheet, table Table, rows [][]string) error {
	existing, err := ensureHeader(ctx, ws, table)
	if err != nil {
		return err
	}

	for i := len(existing) - 1; i >= 1; i-- {
		if err := ws.DeleteRow(ctx, i); err != nil {
			return fmt.Errorf("delete row %d: %w", i, err)
		}
	}

	if len(rows) == 0 {
		return nil
	}
	return ws.Append(ctx, rows)
}

// UserRows is the load protocol: all of one user's rows, header and
// other users' rows filtered out. No rows is a normal empty result.
func UserRows(ctx context.Context, ws Worksheet, username string) ([][]string, error) {
	existing, err := ws.Rows(ctx)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for i := 1; i < len(existing); i++ {
		if len(existing[i]) > 0 && existing[i][0] == username {
			rows = append(rows, existing[i])
		}
	}
	return rows, nil
}

func ensureHeader(ctx context.Context, ws Worksheet, table Table) ([][]string, error) {
	existing, err := ws.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	if len(existing) > 0 && headerMatches(existing[0], table.Header) {
		return existing, nil
	}

	if err := ws.InsertHeader(ctx, table.Header); err != nil {
		return nil, fmt.Errorf("insert header: %w", err)
	}
	return append([][]string{table.Header}, existing...), nil
}

func headerMatches(row, header []string) bool {
	if len(row) != len(header) {
		return false
	}
	for i := range row {
		if row[i] != header[i] {
			return false
		}
	}
	return true
}
