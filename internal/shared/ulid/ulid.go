package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewID generates a lexicographically sortable identifier used for run and request ids.
var NewID = func() string {
	return ulid.Make().String()
}
