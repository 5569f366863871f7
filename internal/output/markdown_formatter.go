package output

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/rgehrsitz/fiplan/internal/domain"
)

//go:embed templates/report.md.tmpl
var markdownTemplateSource string

var markdownTemplate = template.Must(template.New("report.md").Parse(markdownTemplateSource))

// MarkdownFormatter renders the projection as a GitHub flavoured markdown report.
// Goal years are shown in bold.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(projection *domain.Projection) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdownTemplate.Execute(&buf, newReportView(projection)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
