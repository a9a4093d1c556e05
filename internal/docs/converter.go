package docs

import (
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// BodyText extracts the plain text of a document body.
func BodyText(body *docs.Body) string {
	if body == nil {
		return ""
	}
	var text strings.Builder
	for _, element := range body.Content {
		extractPlainText(&text, element)
	}
	return text.String()
}

// documentText returns the text of the first tab for tabbed documents and
// of the body otherwise.
func documentText(doc *docs.Document) string {
	if doc.Body != nil {
		return BodyText(doc.Body)
	}
	for _, tab := range doc.Tabs {
		if tab.DocumentTab != nil {
			return BodyText(tab.DocumentTab.Body)
		}
	}
	return ""
}

// appendIndex is the index just before the final newline of the body,
// where appended text belongs.
func appendIndex(body *docs.Body) int64 {
	if body == nil || len(body.Content) == 0 {
		return 1
	}
	end := body.Content[len(body.Content)-1].EndIndex - 1
	if end < 1 {
		return 1
	}
	return end
}

func extractPlainText(text *strings.Builder, element *docs.StructuralElement) {
	switch {
	case element.Paragraph != nil:
		extractParagraphText(text, element.Paragraph)
	case element.Table != nil:
		extractTableText(text, element.Table)
	}
}

func extractParagraphText(text *strings.Builder, para *docs.Paragraph) {
	for _, elem := range para.Elements {
		if elem.TextRun != nil {
			text.WriteString(elem.TextRun.Content)
		}
	}
}

// extractTableText writes one line per row with cells separated by tabs.
func extractTableText(text *strings.Builder, table *docs.Table) {
	for _, row := range table.TableRows {
		cells := make([]string, 0, len(row.TableCells))
		for _, cell := range row.TableCells {
			var c strings.Builder
			for _, element := range cell.Content {
				if element.Paragraph != nil {
					extractParagraphText(&c, element.Paragraph)
				}
			}
			cells = append(cells, strings.TrimRight(c.String(), "\n"))
		}
		text.WriteString(strings.Join(cells, "\t"))
		text.WriteString("\n")
	}
}
