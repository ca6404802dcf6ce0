package view

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed templates/page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// Examples are the style suggestions offered under the description box
var Examples = []string{
	"Casual summer outfit with a floral dress",
	"Business casual look for a tech interview",
	"Cozy fall outfit with a chunky sweater",
	"Black tie wedding guest outfit",
	"Athleisure look for weekend errands",
}

type pageData struct {
	State       string
	Description string
	Error       string
	Page        Page
	Examples    []string
}

// WriteHTML renders the current state of the machine as a full HTML page
func WriteHTML(w io.Writer, m *Machine) error {
	return pageTemplate.Execute(w, pageData{
		State:       m.State().String(),
		Description: m.Description(),
		Error:       m.ErrorMessage(),
		Page:        m.Page(),
		Examples:    Examples,
	})
}
