package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
)

// methodologyHTML renders the embedded methodology notes into HTML for the
// explorer page. The notes are authored in markdown next to the templates.
func (s *Server) methodologyHTML() template.HTML {
	raw, err := s.embedded.ReadFile("ui/templates/methodology.md")
	if err != nil {
		s.log.Warn("methodology notes unavailable: %v", err)
		return ""
	}
	return template.HTML(markdown.ToHTML(raw, nil, nil))
}
