package output

import (
	"github.com/charmbracelet/glamour"
	"github.com/rgehrsitz/fiplan/internal/domain"
)

// PrettyFormatter renders the markdown report for the terminal with glamour.
// Style is a glamour standard style name ("dark", "light", "notty", ...);
// empty picks one from the terminal background.
type PrettyFormatter struct {
	Style string
	Width int
}

func (p PrettyFormatter) Name() string { return "pretty" }

func (p PrettyFormatter) Format(projection *domain.Projection) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(projection)
	if err != nil {
		return nil, err
	}

	width := p.Width
	if width <= 0 {
		width = 140
	}
	style := glamour.WithAutoStyle()
	if p.Style != "" {
		style = glamour.WithStandardStyle(p.Style)
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	out, err := r.Render(string(md))
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
