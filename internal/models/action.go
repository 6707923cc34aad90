package models

// SectionActionModel describes a toggle link for a section. The URL encodes
// the state the link switches to.
type SectionActionModel struct {
	Kind  string `json:"kind"`
	Class string `json:"class"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

const (
	ActionHighlight  = "highlight"
	ActionVisibility = "visibility"
)

type SectionActionResult struct {
	ActionModel SectionActionModel `json:"actionmodel"`
	TOC         *CourseTOC         `json:"toc"`
}
