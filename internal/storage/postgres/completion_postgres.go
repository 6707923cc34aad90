package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CompletionPostgres struct {
	db *pgxpool.Pool
}

func NewCompletionPostgres(db *pgxpool.Pool) *CompletionPostgres {
	return &CompletionPostgres{db: db}
}

// CompletionStates maps module id to the user's completion state for every
// module of the course the user has a record for.
func (r *CompletionPostgres) CompletionStates(ctx context.Context, courseID, userID uuid.UUID) (map[uuid.UUID]int, error) {
	rows, err := r.db.Query(ctx, `
        SELECT mc.module_id, mc.state
        FROM module_completion mc
        INNER JOIN course_modules m ON m.id = mc.module_id
        WHERE m.course_id = $1 AND mc.user_id = $2
    `, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completion: %w", err)
	}
	defer rows.Close()

	states := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			moduleID uuid.UUID
			state    int
		)
		if err := rows.Scan(&moduleID, &state); err != nil {
			return nil, err
		}
		states[moduleID] = state
	}
	return states, rows.Err()
}
