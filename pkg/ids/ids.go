package ids

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns an opaque identifier of the form "<prefix>-<uuid>", e.g.
// "case-0b7c…". Prefixes keep ids self-describing in logs and URLs.
func New(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String())
}
