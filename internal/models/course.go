package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	FormatTopics         = "topics"
	FormatWeeks          = "weeks"
	FormatSocial         = "social"
	FormatSingleActivity = "singleactivity"
)

type Course struct {
	ID             uuid.UUID `json:"id"`
	Shortname      string    `json:"shortname"`
	Fullname       string    `json:"fullname"`
	Summary        string    `json:"summary"`
	Format         string    `json:"format"`
	NumSections    int       `json:"num_sections"`
	Marker         int       `json:"marker"`
	Visible        bool      `json:"visible"`
	ImageObjectKey string    `json:"image_object_key,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Contact struct {
	UserID   uuid.UUID `json:"user_id"`
	Fullname string    `json:"fullname"`
	Role     string    `json:"role"`
}

// CourseCard is the summary shown on the front page and in the personal menu.
type CourseCard struct {
	CourseID  uuid.UUID `json:"course_id"`
	Shortname string    `json:"shortname"`
	Fullname  string    `json:"fullname"`
	URL       string    `json:"url"`
	ImageURL  string    `json:"image_url,omitempty"`
	Favorited bool      `json:"favorited"`
	Published bool      `json:"published"`
	Teachers  []Contact `json:"teachers"`
}
