// Package availability adapts the host's stored availability rules into
// per-user snapshots of conditionally unavailable sections and modules.
package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zenny/moodle-theme-snap/internal/models"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

type completionRepo interface {
	CompletionStates(ctx context.Context, courseID, userID uuid.UUID) (map[uuid.UUID]int, error)
}

type Engine struct {
	log        logger.Log
	completion completionRepo
}

func NewEngine(log logger.Log, completion completionRepo) *Engine {
	return &Engine{log: log, completion: completion}
}

// UnavailableElements returns the visible sections and modules whose
// availability rule is not satisfied for the user. A module inside an
// unavailable section is itself unavailable.
func (e *Engine) UnavailableElements(ctx context.Context, structure *models.CourseStructure, userID uuid.UUID) (*models.AvailabilitySnapshot, error) {
	states, err := e.completion.CompletionStates(ctx, structure.CourseID, userID)
	if err != nil {
		return nil, fmt.Errorf("load completion states: %w", err)
	}

	snapshot := &models.AvailabilitySnapshot{
		UnavailableSections: []int{},
		UnavailableModules:  []uuid.UUID{},
	}
	blocked := make(map[int]bool)

	for _, sec := range structure.Sections {
		if !sec.Visible {
			continue
		}
		if !e.available(sec.Availability, states, "section", sec.ID) {
			blocked[sec.Number] = true
			snapshot.UnavailableSections = append(snapshot.UnavailableSections, sec.Number)
		}
	}

	for _, m := range structure.Modules {
		if !m.Visible {
			continue
		}
		if blocked[m.Section] || !e.available(m.Availability, states, "module", m.ID) {
			snapshot.UnavailableModules = append(snapshot.UnavailableModules, m.ID)
		}
	}
	return snapshot, nil
}

func (e *Engine) available(rule string, states map[uuid.UUID]int, kind string, id uuid.UUID) bool {
	tree, err := Parse(rule)
	if err != nil {
		e.log.ErrorErr("availability: unreadable rule, treating as unavailable", err, "kind", kind, "id", id.String())
		return false
	}
	return tree.Available(states)
}
