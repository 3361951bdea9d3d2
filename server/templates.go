package server

import (
	"embed"
	"html/template"
	"time"

	"github.com/zenflow/zenflow/pkg/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// template names
const (
	templateDashboard = "dashboard.html"
	templateLeadItem  = "lead-item.html"
)

// leadView is a lead row as rendered in the live list
type leadView struct {
	domain.Lead
	Hidden bool // rendered transparent and shifted, waiting for the reveal
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"ms": func(d time.Duration) int64 { return d.Milliseconds() },
	}
}

// parseTemplates loads all page and fragment templates
func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*.html")
}
