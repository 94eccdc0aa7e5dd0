package common

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULID returns a 26-char ULID suitable for primary keys.
func NewULID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// NewID returns "<prefix>_<suffix>" where the suffix is the random tail of a
// ULID. Collisions are accepted as negligible; these ids are lookup keys, not
// tokens.
func NewID(prefix string) string {
	id, err := NewULID()
	if err != nil {
		id = ulid.Make().String()
	}
	return prefix + "_" + strings.ToLower(id[len(id)-9:])
}
