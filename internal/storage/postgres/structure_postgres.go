package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
	"github.com/zenny/moodle-theme-snap/internal/models"
)

// StructurePostgres reads and mutates course sections and modules.
type StructurePostgres struct {
	db *pgxpool.Pool
}

func NewStructurePostgres(db *pgxpool.Pool) *StructurePostgres {
	return &StructurePostgres{db: db}
}

func (r *StructurePostgres) CourseStructure(ctx context.Context, courseID uuid.UUID) (*models.CourseStructure, error) {
	structure := &models.CourseStructure{
		CourseID: courseID,
		Sections: []models.Section{},
		Modules:  []models.Module{},
	}

	rows, err := r.db.Query(ctx, `
        SELECT id, course_id, section, COALESCE(name, ''), COALESCE(summary, ''), visible, COALESCE(availability, '')
        FROM course_sections
        WHERE course_id = $1
        ORDER BY section
    `, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.CourseID, &s.Number, &s.Name, &s.Summary, &s.Visible, &s.Availability); err != nil {
			return nil, err
		}
		structure.Sections = append(structure.Sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(structure.Sections) == 0 {
		return nil, app_errors.ErrCourseNotFound
	}

	modRows, err := r.db.Query(ctx, `
        SELECT id, course_id, section, position, modname, name, visible, completion, COALESCE(availability, '')
        FROM course_modules
        WHERE course_id = $1
        ORDER BY section, position
    `, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer modRows.Close()

	for modRows.Next() {
		var m models.Module
		if err := modRows.Scan(&m.ID, &m.CourseID, &m.Section, &m.Position, &m.ModName, &m.Name, &m.Visible, &m.Completion, &m.Availability); err != nil {
			return nil, err
		}
		structure.Modules = append(structure.Modules, m)
	}
	if err := modRows.Err(); err != nil {
		return nil, err
	}

	return structure, nil
}

// Invalidate is a no-op: every read goes to the database.
func (r *StructurePostgres) Invalidate(context.Context, uuid.UUID) error {
	return nil
}

func (r *StructurePostgres) SetSectionVisible(ctx context.Context, courseID uuid.UUID, section int, visible bool) error {
	const query = `
        UPDATE course_sections
           SET visible = $3
         WHERE course_id = $1 AND section = $2
    `
	cmdTag, err := r.db.Exec(ctx, query, courseID, section, visible)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrSectionNotFound
	}
	return nil
}

func (r *StructurePostgres) SetMarker(ctx context.Context, courseID uuid.UUID, section int) error {
	const query = `
        UPDATE courses
           SET marker     = $2,
               updated_at = NOW()
         WHERE id = $1
    `
	cmdTag, err := r.db.Exec(ctx, query, courseID, section)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}
