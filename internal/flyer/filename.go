package flyer

import (
	"regexp"
	"strings"
)

// DefaultBaseName is used when the title has no usable characters.
const DefaultBaseName = "flyer"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// SafeBase turns a title into a download file stem: lowercase, runs of anything
// outside [a-z0-9] collapsed to one hyphen, no leading or trailing hyphen.
func SafeBase(title, fallback string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.Trim(nonAlnum.ReplaceAllString(s, "-"), "-")
	if s == "" {
		return fallback
	}
	return s
}

// FileName is SafeBase plus the extension for format.
func FileName(title, ext string) string {
	return SafeBase(title, DefaultBaseName) + "." + ext
}
