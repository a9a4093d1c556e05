package sheets_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/teemow/workspace-mcp/internal/operation"
	"github.com/teemow/workspace-mcp/internal/server"
)

const service = "sheets"

// Operations returns all Google Sheets operations.
func Operations(sc *server.ServerContext) []operation.Descriptor {
	return []operation.Descriptor{
		{
			Name:        "sheets_get_values",
			Description: "Get values from a Google Sheet",
			Service:     service,
			Kind:        "get",
			ErrorPrefix: "Error retrieving sheet values",
			ReadOnly:    true,
			Schema: operation.Schema{
				{Name: "spreadsheetId", Type: operation.TypeString, Required: true, Description: "ID of the spreadsheet"},
				{Name: "range", Type: operation.TypeString, Required: true, Description: "A1 notation range to retrieve"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.SheetsClient()
				if err != nil {
					return "", err
				}
				a1Range := args.String("range")
				rows, err := client.GetValues(ctx, args.String("spreadsheetId"), a1Range)
				if err != nil {
					return "", err
				}
				return formatValues(a1Range, rows), nil
			},
		},
		{
			Name:        "sheets_update_values",
			Description: "Update values in a Google Sheet",
			Service:     service,
			Kind:        "update",
			ErrorPrefix: "Error updating sheet values",
			Schema: operation.Schema{
				{Name: "spreadsheetId", Type: operation.TypeString, Required: true, Description: "ID of the spreadsheet"},
				{Name: "range", Type: operation.TypeString, Required: true, Description: "A1 notation range to update"},
				{Name: "values", Type: operation.TypeStringMatrix, Required: true, Description: "2D array of values to update"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.SheetsClient()
				if err != nil {
					return "", err
				}
				result, err := client.UpdateValues(ctx, args.String("spreadsheetId"), args.String("range"), args.Matrix("values"))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Values updated successfully!\n\nRange: %s\nCells updated: %d",
					result.UpdatedRange, result.UpdatedCells), nil
			},
		},
		{
			Name:        "sheets_create_spreadsheet",
			Description: "Create a new Google Sheet",
			Service:     service,
			Kind:        "create",
			ErrorPrefix: "Error creating spreadsheet",
			Schema: operation.Schema{
				{Name: "title", Type: operation.TypeString, Required: true, Description: "Title of the spreadsheet"},
				{Name: "sheets", Type: operation.TypeStringArray, Description: "Names of sheets to create"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.SheetsClient()
				if err != nil {
					return "", err
				}
				spreadsheet, err := client.CreateSpreadsheet(ctx, args.String("title"), args.Strings("sheets"))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Spreadsheet created successfully!\n\nTitle: %s\nSpreadsheet ID: %s\nURL: %s",
					spreadsheet.Title, spreadsheet.ID, spreadsheet.URL()), nil
			},
		},
	}
}

func formatValues(a1Range string, rows [][]string) string {
	if len(rows) == 0 {
		return "No data found in the specified range."
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, "\t")
	}
	return fmt.Sprintf("Values from %s:\n\n%s", a1Range, strings.Join(lines, "\n"))
}
