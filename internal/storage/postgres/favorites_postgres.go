package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zenny/moodle-theme-snap/internal/app_errors"
	"github.com/zenny/moodle-theme-snap/internal/models"
)

type FavoritesPostgres struct {
	db *pgxpool.Pool
}

func NewFavoritesPostgres(db *pgxpool.Pool) *FavoritesPostgres {
	return &FavoritesPostgres{db: db}
}

func (r *FavoritesPostgres) AddFavorite(ctx context.Context, userID, courseID uuid.UUID) error {
	query := `
        INSERT INTO snap_course_favorites (user_id, course_id, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, course_id) DO NOTHING
    `
	_, err := r.db.Exec(ctx, query, userID, courseID)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == codeForeignKeyViolation {
			if pgErr.ConstraintName == "snap_course_favorites_user_id_fkey" {
				return app_errors.ErrUserNotFound
			}
			return app_errors.ErrCourseNotFound
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *FavoritesPostgres) RemoveFavorite(ctx context.Context, userID, courseID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        DELETE FROM snap_course_favorites
        WHERE user_id = $1 AND course_id = $2
    `, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *FavoritesPostgres) IsFavorite(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS(
            SELECT 1 FROM snap_course_favorites WHERE user_id = $1 AND course_id = $2
        )
    `, userID, courseID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *FavoritesPostgres) FavoritesByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	rows, err := r.db.Query(ctx, `
        SELECT user_id, course_id, created_at
        FROM snap_course_favorites
        WHERE user_id = $1
        ORDER BY created_at, id
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites := []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.UserID, &f.CourseID, &f.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (r *FavoritesPostgres) DeleteUserFavorites(ctx context.Context, userID uuid.UUID) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM snap_course_favorites WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user favorites: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
