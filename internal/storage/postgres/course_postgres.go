package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
	"github.com/zenny/moodle-theme-snap/internal/models"
)

const courseColumns = `
	c.id, c.shortname, c.fullname, c.summary, c.format, c.num_sections,
	c.marker, c.visible, COALESCE(c.image_object_key, ''), c.created_at, c.updated_at`

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

func (r *CoursePostgres) CourseByShortname(ctx context.Context, shortname string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses c WHERE c.shortname = $1`
	return r.one(ctx, query, shortname)
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses c WHERE c.id = $1`
	return r.one(ctx, query, id)
}

func (r *CoursePostgres) one(ctx context.Context, query string, arg any) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID,
		&course.Shortname,
		&course.Fullname,
		&course.Summary,
		&course.Format,
		&course.NumSections,
		&course.Marker,
		&course.Visible,
		&course.ImageObjectKey,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// AllCourses lists every course, oldest first. Used to rebuild the search
// index.
func (r *CoursePostgres) AllCourses(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.Query(ctx, `SELECT `+courseColumns+` FROM courses c ORDER BY c.created_at, c.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}
