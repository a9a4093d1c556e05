package sheets

import "fmt"

// ValueInputOption used for all updates.
const ValueInputOption = "USER_ENTERED"

// UpdateResult reports the outcome of a values update.
type UpdateResult struct {
	UpdatedRange string
	UpdatedCells int64
}

// Spreadsheet identifies a created spreadsheet.
type Spreadsheet struct {
	ID     string
	Title  string
	Sheets []string
}

// URL returns the editor URL of the spreadsheet.
func (s *Spreadsheet) URL() string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", s.ID)
}
