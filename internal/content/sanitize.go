package content

import (
	"path"
	"regexp"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeName strips every character outside [A-Za-z0-9.-] from an uploaded
// filename. An empty result falls back to "file" so the derived key stays
// usable.
func SanitizeName(name string) string {
	safe := unsafeNameChars.ReplaceAllString(name, "")
	if safe == "" || safe == "." || safe == ".." {
		return "file"
	}
	return safe
}

// DeriveID computes an item's identifier from its URL: the final path
// segment, which is exactly the timestamped storage filename.
func DeriveID(url string) string {
	return path.Base(url)
}
