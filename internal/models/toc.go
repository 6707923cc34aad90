package models

import "github.com/google/uuid"

const ListLargeClass = "list-large"

type CourseTOC struct {
	CourseID          uuid.UUID   `json:"course_id"`
	FormatSupportsTOC bool        `json:"format_supports_toc"`
	Chapters          TOCChapters `json:"chapters"`
	Modules           []TOCModule `json:"modules"`
}

type TOCChapters struct {
	ListLarge string       `json:"list_large"`
	Chapters  []TOCChapter `json:"chapters"`
}

type TOCChapter struct {
	Number    int         `json:"number"`
	Title     string      `json:"title"`
	URL       string      `json:"url"`
	Hidden    bool        `json:"hidden"`
	Current   bool        `json:"current"`
	Available bool        `json:"available"`
	Classes   string      `json:"classes"`
	Progress  TOCProgress `json:"progress"`
}

type TOCProgress struct {
	Complete int `json:"complete"`
	Total    int `json:"total"`
}

type TOCModule struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	ModName string    `json:"modname"`
	Section int       `json:"section"`
	URL     string    `json:"url"`
}
