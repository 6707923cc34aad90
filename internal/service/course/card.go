package course

import (
	"context"
	"fmt"

	"github.com/zenny/moodle-theme-snap/internal/models"
)

const defaultSearchSize = 20

func (s *CourseService) CardByShortname(ctx context.Context, shortname string, viewer models.Viewer) (*models.CourseCard, error) {
	course, err := s.CourseByShortname(ctx, shortname)
	if err != nil {
		return nil, err
	}
	return s.card(ctx, course, viewer)
}

// SearchCards returns cards for the courses matching query. Hidden courses
// are only returned to editors.
func (s *CourseService) SearchCards(ctx context.Context, query string, viewer models.Viewer, limit int) ([]models.CourseCard, error) {
	cards := []models.CourseCard{}
	if s.search == nil {
		return cards, nil
	}
	if limit <= 0 {
		limit = defaultSearchSize
	}

	ids, err := s.search.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search cards: %w", err)
	}

	for _, id := range ids {
		course, err := s.courses.CourseByID(ctx, id)
		if err != nil {
			s.log.ErrorErr("search cards: failed to load course by id", err, "course_id", id.String())
			continue
		}
		if !course.Visible {
			inCourse, err := s.courseViewer(ctx, course, viewer)
			if err != nil {
				return nil, err
			}
			if !inCourse.CanEdit() {
				continue
			}
		}
		card, err := s.card(ctx, course, viewer)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

func (s *CourseService) card(ctx context.Context, course *models.Course, viewer models.Viewer) (*models.CourseCard, error) {
	favorited, err := s.favorites.IsFavorite(ctx, viewer.UserID, course.ID)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", course.Shortname, err)
	}

	var imageURL string
	if course.ImageObjectKey != "" && s.images != nil {
		imageURL, err = s.images.GetImageURL(ctx, course.ImageObjectKey)
		if err != nil {
			s.log.ErrorErr("card: failed to get image URL", err, "course", course.Shortname)
		}
	}

	teachers, err := s.enrolments.CourseContacts(ctx, course.ID, models.EditingTeacherRole, models.TeacherRole)
	if err != nil {
		s.log.ErrorErr("card: failed to get course contacts", err, "course", course.Shortname)
	}
	if teachers == nil {
		teachers = []models.Contact{}
	}

	return &models.CourseCard{
		CourseID:  course.ID,
		Shortname: course.Shortname,
		Fullname:  course.Fullname,
		URL:       s.courseURL(course.ID, nil),
		ImageURL:  imageURL,
		Favorited: favorited,
		Published: course.Visible,
		Teachers:  teachers,
	}, nil
}
