package models

import "github.com/google/uuid"

// Completion states as stored by the host.
const (
	CompletionIncomplete   = 0
	CompletionComplete     = 1
	CompletionCompletePass = 2
	CompletionCompleteFail = 3
)

// AvailabilitySnapshot lists the sections and modules a user cannot access
// because of unmet availability conditions.
type AvailabilitySnapshot struct {
	UnavailableSections []int       `json:"unavailable_sections"`
	UnavailableModules  []uuid.UUID `json:"unavailable_modules"`
}

type CompletionResult struct {
	NewlyAvailableSectionHTML map[int]string       `json:"newlyavailablesectionhtml"`
	NewlyAvailableModuleHTML  map[uuid.UUID]string `json:"newlyavailablemodhtml"`
	TOC                       *CourseTOC           `json:"toc"`
}
