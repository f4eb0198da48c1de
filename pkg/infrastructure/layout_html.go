package infrastructure

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	_ "embed"

	"resume-builder/internal/domain"
)

//go:embed templates/resume.html.tmpl
var resumeTemplate string

var layoutTmpl = template.Must(template.New("resume").Funcs(template.FuncMap{
	"cssFamily": cssFamily,
	"repeat":    repeatN,
}).Parse(resumeTemplate))

// LayoutHTML renders the layout tree to the standalone HTML page the
// browser paginates. Atomic blocks carry break-inside:avoid so a single
// entry never splits across a page boundary.
func LayoutHTML(lay *domain.Layout) (string, error) {
	var buf bytes.Buffer
	if err := layoutTmpl.Execute(&buf, lay); err != nil {
		return "", fmt.Errorf("render layout html: %w", err)
	}
	return buf.String(), nil
}

// cssFamily maps a PDF base-14 face name onto a browser font stack.
func cssFamily(face string) template.CSS {
	switch {
	case strings.HasPrefix(face, "Courier"):
		return `"Courier New", Courier, monospace`
	case strings.HasPrefix(face, "Helvetica"):
		return `Helvetica, Arial, sans-serif`
	case strings.HasPrefix(face, "Times"):
		return `"Times New Roman", Times, serif`
	}
	return `serif`
}

func repeatN(n int) []struct{} {
	if n < 0 {
		n = 0
	}
	return make([]struct{}, n)
}
