package identifier

import "github.com/google/uuid"

// canonicalLength is the length of the hyphenated 8-4-4-4-12 form.
const canonicalLength = 36

// New returns a random (version 4) identifier in canonical form.
func New() string {
	return uuid.NewString()
}

// Valid reports whether id is a UUID in canonical hyphenated form.
// Braced and urn-prefixed spellings are rejected so that the stored
// representation stays unique per record.
func Valid(id string) bool {
	if len(id) != canonicalLength {
		return false
	}
	return uuid.Validate(id) == nil
}
