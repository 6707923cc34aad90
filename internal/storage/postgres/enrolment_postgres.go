package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zenny/moodle-theme-snap/internal/models"
)

type EnrolmentPostgres struct {
	db *pgxpool.Pool
}

func NewEnrolmentPostgres(db *pgxpool.Pool) *EnrolmentPostgres {
	return &EnrolmentPostgres{db: db}
}

// EnrolledCourses lists the courses the user is enrolled in, in enrolment
// order.
func (r *EnrolmentPostgres) EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]models.Course, error) {
	query := `
        SELECT ` + courseColumns + `
        FROM courses c
        INNER JOIN enrolments e ON e.course_id = c.id
        WHERE e.user_id = $1
        ORDER BY e.id
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled courses: %w", err)
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

func (r *EnrolmentPostgres) CourseContacts(ctx context.Context, courseID uuid.UUID, roles ...string) ([]models.Contact, error) {
	rows, err := r.db.Query(ctx, `
        SELECT u.id, u.fullname, e.role
        FROM enrolments e
        INNER JOIN users u ON u.id = e.user_id
        WHERE e.course_id = $1 AND e.role = ANY($2)
        ORDER BY e.id
    `, courseID, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to query course contacts: %w", err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.UserID, &c.Fullname, &c.Role); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// CourseRoles returns the roles userID holds through enrolment in courseID.
func (r *EnrolmentPostgres) CourseRoles(ctx context.Context, courseID, userID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, `
        SELECT DISTINCT e.role
        FROM enrolments e
        WHERE e.course_id = $1 AND e.user_id = $2
    `, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query course roles: %w", err)
	}
	roles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan course roles: %w", err)
	}
	return roles, nil
}
