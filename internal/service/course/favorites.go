package course

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zenny/moodle-theme-snap/internal/models"
)

func (s *CourseService) Favorited(ctx context.Context, shortname string, userID uuid.UUID) (bool, error) {
	course, err := s.CourseByShortname(ctx, shortname)
	if err != nil {
		return false, err
	}
	return s.favorites.IsFavorite(ctx, userID, course.ID)
}

// SetFavorite marks or unmarks the course as a favorite of the user. It
// returns true once the record matches the requested state.
func (s *CourseService) SetFavorite(ctx context.Context, shortname string, favorite bool, userID uuid.UUID) (bool, error) {
	course, err := s.CourseByShortname(ctx, shortname)
	if err != nil {
		return false, err
	}

	if favorite {
		err = s.favorites.AddFavorite(ctx, userID, course.ID)
	} else {
		err = s.favorites.RemoveFavorite(ctx, userID, course.ID)
	}
	if err != nil {
		s.log.ErrorErr("SetFavorite: failed to store favorite", err, "course", shortname, "favorite", favorite)
		return false, fmt.Errorf("set favorite %q: %w", shortname, err)
	}
	return true, nil
}

// Favorites lists the user's favorite records, oldest first.
func (s *CourseService) Favorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	return s.favorites.FavoritesByUser(ctx, userID)
}

// MyCoursesSplitByFavorites partitions the user's enrolled courses. Favorites
// keep the order they were marked in, the rest keep enrolment order.
func (s *CourseService) MyCoursesSplitByFavorites(ctx context.Context, userID uuid.UUID) ([]models.Course, []models.Course, error) {
	courses, err := s.enrolments.EnrolledCourses(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("enrolled courses: %w", err)
	}
	favs, err := s.favorites.FavoritesByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("favorites: %w", err)
	}

	byID := make(map[uuid.UUID]models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	favorites := make([]models.Course, 0, len(favs))
	seen := make(map[uuid.UUID]bool, len(favs))
	for _, f := range favs {
		c, ok := byID[f.CourseID]
		if !ok {
			continue
		}
		favorites = append(favorites, c)
		seen[c.ID] = true
	}

	others := make([]models.Course, 0, len(courses)-len(favorites))
	for _, c := range courses {
		if !seen[c.ID] {
			others = append(others, c)
		}
	}
	return favorites, others, nil
}

// DeleteUserFavorites removes every favorite of a deleted user.
func (s *CourseService) DeleteUserFavorites(ctx context.Context, userID uuid.UUID) error {
	n, err := s.favorites.DeleteUserFavorites(ctx, userID)
	if err != nil {
		s.log.ErrorErr("DeleteUserFavorites: failed", err, "user_id", userID.String())
		return err
	}
	s.log.Info("favorites purged for deleted user", "user_id", userID.String(), "count", n)
	return nil
}
