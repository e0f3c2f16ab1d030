package schema

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID returns a lexicographically sortable unique identifier for rows with
// text primary keys. Creation order is recoverable from the key alone.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
