package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLFormatter converts the markdown report to a standalone HTML page.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

var markdownToHTML = goldmark.New(goldmark.WithExtensions(extension.Table))

func (h HTMLFormatter) Format(projection *domain.Projection) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(projection)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := markdownToHTML.Convert(md, &body); err != nil {
		return nil, err
	}

	title := "Retirement projection"
	if projection.Name != "" {
		title += ": " + projection.Name
	}

	var buf bytes.Buffer
	data := struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
