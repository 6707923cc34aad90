package redis

import "github.com/google/uuid"

const (
	// KeyPrefixStructure is the prefix for cached course structures
	KeyPrefixStructure = "snap:structure:"
)

// StructureKey returns the Redis key for the cached structure of a course
func StructureKey(courseID uuid.UUID) string {
	return KeyPrefixStructure + courseID.String()
}
