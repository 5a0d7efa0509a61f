package sheetstore

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSpreadsheet provides worksheets backed by one Google spreadsheet,
// one tab per mirrored table.
type GoogleSpreadsheet struct {
	service       *sheets.Service
	spreadsheetID string
}

func NewGoogleSpreadsheet(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*GoogleSpreadsheet, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &GoogleSpreadsheet{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

func (g *GoogleSpreadsheet) Worksheet(ctx context.Context, table Table) (Worksheet, error) {
	spreadsheet, err := g.service.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == table.Name {
			return &googleWorksheet{
				service:       g.service,
				spreadsheetID: g.spreadsheetID,
				title:         table.Name,
				sheetID:       sheet.Properties.SheetId,
			}, nil
		}
	}

	// missing tabs are created lazily, absence is not an error
	resp, err := g.service.Spreadsheets.BatchUpdate(g.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: table.Name},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("add sheet [%s]: %w", table.Name, err)
	}

	return &googleWorksheet{
		service:       g.service,
		spreadsheetID: g.spreadsheetID,
		title:         table.Name,
		sheetID:       resp.Replies[0].AddSheet.Properties.SheetId,
	}, nil
}

type googleWorksheet struct {
	service       *sheets.Service
	spreadsheetID string
	title         string
	sheetID       int64
}

func (w *googleWorksheet) Rows(ctx context.Context) ([][]string, error) {
	resp, err := w.service.Spreadsheets.Values.
		Get(w.spreadsheetID, w.title).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get values [%s]: %w", w.title, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, rawRow := range resp.Values {
		row := make([]string, 0, len(rawRow))
		for _, cell := range rawRow {
			row = append(row, fmt.Sprintf("%v", cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (w *googleWorksheet) Append(ctx context.Context, rows [][]string) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		value := make([]interface{}, 0, len(row))
		for _, cell := range row {
			value = append(value, cell)
		}
		values = append(values, value)
	}

	_, err := w.service.Spreadsheets.Values.
		Append(w.spreadsheetID, w.title, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append values [%s]: %w", w.title, err)
	}
	return nil
}

func (w *googleWorksheet) DeleteRow(ctx context.Context, index int) error {
	_, err := w.service.Spreadsheets.BatchUpdate(w.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    w.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(index),
					EndIndex:   int64(index + 1),
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("delete row %d [%s]: %w", index, w.title, err)
	}
	return nil
}

func (w *googleWorksheet) InsertHeader(ctx context.Context, header []string) error {
	_, err := w.service.Spreadsheets.BatchUpdate(w.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			InsertDimension: &sheets.InsertDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    w.sheetID,
					Dimension:  "ROWS",
					StartIndex: 0,
					EndIndex:   1,
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("insert header row [%s]: %w", w.title, err)
	}

	headerValue := make([]interface{}, 0, len(header))
	for _, cell := range header {
		headerValue = append(headerValue, cell)
	}
	_, err = w.service.Spreadsheets.Values.
		Update(w.spreadsheetID, fmt.Sprintf("%s!A1", w.title), &sheets.ValueRange{
			Values: [][]interface{}{headerValue},
		}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header [%s]: %w", w.title, err)
	}
	return nil
}
