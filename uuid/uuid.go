package uuid

import (
	"github.com/google/uuid"
)

func New() string {
	v, err := uuid.NewRandom()
	if err != nil {
		return New()
	}
	return v.String()
}

// IsValid reports whether s is a canonical UUID, case-insensitively.
func IsValid(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
