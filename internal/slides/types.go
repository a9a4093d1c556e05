package slides

import "fmt"

// DefaultLayout is the predefined layout of slides created without an
// explicit layout reference.
const DefaultLayout = "BLANK"

// Presentation summarizes a presentation.
type Presentation struct {
	ID         string
	Title      string
	RevisionID string
	SlideCount int
}

// URL returns the editor URL of the presentation.
func (p *Presentation) URL() string {
	return fmt.Sprintf("https://docs.google.com/presentation/d/%s/edit", p.ID)
}
