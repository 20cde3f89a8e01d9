package lint

import (
	"fmt"
	"strings"
)

// DefaultDocsBaseURL is the hosted documentation of the matching Clippy lints.
const DefaultDocsBaseURL = "https://rust-lang.github.io/rust-clippy/master/index.html"

// DocsBaseURL can be overridden via config for local/offline mode.
var DocsBaseURL = DefaultDocsBaseURL

// BuildDocURL constructs a documentation URL for a rule.
// Structural rules have no external documentation.
func BuildDocURL(name string) string {
	if isStructural(name) {
		return ""
	}
	return fmt.Sprintf("%s#%s", DocsBaseURL, strings.ToLower(name))
}

// SetDocsBaseURL overrides the default documentation base URL.
func SetDocsBaseURL(url string) {
	DocsBaseURL = strings.TrimSuffix(url, "/")
}

// ResetDocsBaseURL resets to the default documentation URL.
func ResetDocsBaseURL() {
	DocsBaseURL = DefaultDocsBaseURL
}
