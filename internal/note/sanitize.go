package note

import "github.com/microcosm-cc/bluemonday"

// policy is the sanitizer applied to note content on every write path.
// UGC policy: common formatting and link tags survive, scripts and event
// handlers do not.
var policy = bluemonday.UGCPolicy()

// Sanitize strips disallowed markup from note content.
func Sanitize(content string) string {
	return policy.Sanitize(content)
}
