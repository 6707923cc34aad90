// Package format describes what each course format supports.
package format

import (
	"github.com/zenny/moodle-theme-snap/internal/models"
)

type Format struct {
	Name        string
	SupportsTOC bool
	// SectionTerm is the word used for a section in action labels.
	SectionTerm string
}

type Registry struct {
	formats map[string]Format
}

func NewRegistry() *Registry {
	r := &Registry{formats: make(map[string]Format)}
	r.Register(Format{Name: models.FormatTopics, SupportsTOC: true, SectionTerm: "topic"})
	r.Register(Format{Name: models.FormatWeeks, SupportsTOC: true, SectionTerm: "week"})
	r.Register(Format{Name: models.FormatSocial, SupportsTOC: false, SectionTerm: "section"})
	r.Register(Format{Name: models.FormatSingleActivity, SupportsTOC: false, SectionTerm: "section"})
	return r
}

func (r *Registry) Register(f Format) {
	r.formats[f.Name] = f
}

// Lookup returns the named format. Unknown formats get no TOC support.
func (r *Registry) Lookup(name string) Format {
	if f, ok := r.formats[name]; ok {
		return f
	}
	return Format{Name: name, SectionTerm: "section"}
}
