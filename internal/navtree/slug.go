package navtree

import (
	"regexp"
	"strings"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slug converts a label to a URL path. "About Us" becomes "/about-us";
// labels without any letters or digits become "/".
func Slug(label string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(label), "-")
	return "/" + strings.Trim(s, "-")
}
