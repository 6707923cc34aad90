package course

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
	"github.com/zenny/moodle-theme-snap/internal/models"
)

var fragments = template.Must(template.New("fragments").Parse(`
{{- define "module" -}}
<li class="activity {{.ModName}} modtype_{{.ModName}}" id="module-{{.ID}}"><div class="activityinstance"><a href="{{.URL}}"><span class="instancename">{{.Name}}</span></a></div></li>
{{- end -}}
{{- define "section" -}}
<li id="section-{{.Number}}" class="{{.Classes}}" aria-label="{{.Title}}"><div class="content"><h2 class="sectionname">{{.Title}}</h2><div class="summary">{{.Summary}}</div><ul class="section img-text">{{range .Modules}}{{template "module" .}}{{end}}</ul></div></li>
{{- end -}}
`))

type moduleView struct {
	ID      string
	ModName string
	Name    string
	URL     string
}

type sectionView struct {
	Number  int
	Title   string
	Summary string
	Classes string
	Modules []moduleView
}

func (s *CourseService) renderModule(m models.Module) (string, error) {
	var b strings.Builder
	if err := fragments.ExecuteTemplate(&b, "module", s.moduleView(m)); err != nil {
		return "", fmt.Errorf("render module %s: %w", m.ID, err)
	}
	return b.String(), nil
}

func (s *CourseService) renderSection(course *models.Course, structure *models.CourseStructure, sec models.Section, blocked map[uuid.UUID]bool, viewer models.Viewer) (string, error) {
	view := sectionView{
		Number:  sec.Number,
		Title:   sectionTitle(sec, s.formats.Lookup(course.Format)),
		Summary: sec.Summary,
		Classes: "section main clearfix",
	}
	if course.Marker > 0 && course.Marker == sec.Number {
		view.Classes += " current"
	}
	for _, m := range structure.SectionModules(sec.Number) {
		if !viewer.CanEdit() && (!m.Visible || blocked[m.ID]) {
			continue
		}
		view.Modules = append(view.Modules, s.moduleView(m))
	}

	var b strings.Builder
	if err := fragments.ExecuteTemplate(&b, "section", view); err != nil {
		return "", fmt.Errorf("render section %d: %w", sec.Number, err)
	}
	return b.String(), nil
}

func (s *CourseService) moduleView(m models.Module) moduleView {
	return moduleView{
		ID:      m.ID.String(),
		ModName: m.ModName,
		Name:    m.Name,
		URL:     s.moduleURL(m),
	}
}
