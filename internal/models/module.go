package models

import (
	"github.com/google/uuid"
)

const (
	CompletionTrackingNone      = 0
	CompletionTrackingManual    = 1
	CompletionTrackingAutomatic = 2
)

type Section struct {
	ID           uuid.UUID `json:"id"`
	CourseID     uuid.UUID `json:"course_id"`
	Number       int       `json:"number"`
	Name         string    `json:"name"`
	Summary      string    `json:"summary"`
	Visible      bool      `json:"visible"`
	Availability string    `json:"availability,omitempty"`
}

// Module is a course module (activity or resource) placed in a section.
type Module struct {
	ID           uuid.UUID `json:"id"`
	CourseID     uuid.UUID `json:"course_id"`
	Section      int       `json:"section"`
	Position     int       `json:"position"`
	ModName      string    `json:"modname"`
	Name         string    `json:"name"`
	Visible      bool      `json:"visible"`
	Completion   int       `json:"completion"`
	Availability string    `json:"availability,omitempty"`
}

// CourseStructure holds the sections and modules of one course, sections
// ordered by number and modules by section then position.
type CourseStructure struct {
	CourseID uuid.UUID `json:"course_id"`
	Sections []Section `json:"sections"`
	Modules  []Module  `json:"modules"`
}

func (s *CourseStructure) Section(number int) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.Number == number {
			return sec, true
		}
	}
	return Section{}, false
}

func (s *CourseStructure) SectionModules(number int) []Module {
	var mods []Module
	for _, m := range s.Modules {
		if m.Section == number {
			mods = append(mods, m)
		}
	}
	return mods
}

func (s *CourseStructure) Module(id uuid.UUID) (Module, bool) {
	for _, m := range s.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}
