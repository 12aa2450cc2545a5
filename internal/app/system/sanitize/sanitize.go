// internal/app/system/sanitize/sanitize.go
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy strips all markup. Free-text fields (about, vision, mission,
// description) are stored as plain text; clients render them as text, so
// anything that survives a strict policy is safe everywhere.
var policy = bluemonday.StrictPolicy()

// Text sanitizes a free-text input field and trims surrounding space.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
