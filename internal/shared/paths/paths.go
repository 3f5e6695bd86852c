package paths

import "strings"

// Separator is the path separator used by the backend
const Separator = "/"

// Root is the canonical path of the tree root
const Root = "/"

// Split returns the non-empty segments of a backend path
func Split(path string) []string {
	raw := strings.Split(path, Separator)
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// Join builds an absolute path from segments
func Join(segments []string) string {
	if len(segments) == 0 {
		return Root
	}
	return Separator + strings.Join(segments, Separator)
}

// Clean normalizes a path to its absolute, slash-collapsed form
func Clean(path string) string {
	return Join(Split(path))
}

// Base returns the final segment of a path.
// An empty string is returned for the root.
func Base(path string) string {
	segments := Split(path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// Parent returns the segments of the parent and the final segment name.
// ok is false for the root.
func Parent(path string) (parent []string, name string, ok bool) {
	segments := Split(path)
	if len(segments) == 0 {
		return nil, "", false
	}
	return segments[:len(segments)-1], segments[len(segments)-1], true
}

// IsWithin reports whether path equals base or lies below it
func IsWithin(path, base string) bool {
	p, b := Split(path), Split(base)
	if len(b) > len(p) {
		return false
	}
	for i := range b {
		if p[i] != b[i] {
			return false
		}
	}
	return true
}

// ValidName reports whether name can be used as a single segment
func ValidName(name string) bool {
	return name != "" && !strings.Contains(name, Separator)
}
