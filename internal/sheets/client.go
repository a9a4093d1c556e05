package sheets

import (
	"context"
	"fmt"

	"github.com/spf13/cast"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Client wraps the Google Sheets service.
type Client struct {
	service *sheets.Service
}

// NewClient creates a Sheets client from the given options.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}
	return &Client{service: svc}, nil
}

// GetValues reads the cells of an A1 range. Empty trailing cells and rows
// are omitted by the API.
func (c *Client) GetValues(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, a1Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cast.ToString(v)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// UpdateValues writes values into an A1 range.
func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, a1Range string, values [][]string) (*UpdateResult, error) {
	rows := make([][]interface{}, len(values))
	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		rows[i] = cells
	}

	resp, err := c.service.Spreadsheets.Values.Update(spreadsheetID, a1Range, &sheets.ValueRange{Values: rows}).
		ValueInputOption(ValueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update values: %w", err)
	}
	return &UpdateResult{UpdatedRange: resp.UpdatedRange, UpdatedCells: resp.UpdatedCells}, nil
}

// CreateSpreadsheet creates a spreadsheet with optional named sheets.
func (c *Client) CreateSpreadsheet(ctx context.Context, title string, sheetTitles []string) (*Spreadsheet, error) {
	req := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}
	for _, name := range sheetTitles {
		req.Sheets = append(req.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: name},
		})
	}

	resp, err := c.service.Spreadsheets.Create(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	result := &Spreadsheet{ID: resp.SpreadsheetId}
	if resp.Properties != nil {
		result.Title = resp.Properties.Title
	}
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			result.Sheets = append(result.Sheets, s.Properties.Title)
		}
	}
	return result, nil
}
