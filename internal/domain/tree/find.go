package tree

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/GriffinCanCode/godisk/internal/shared/paths"
)

// Match is a node found by Find
type Match struct {
	Path string `json:"path" yaml:"path"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// Find returns the nodes matching a glob pattern in pre-order.
//
// A pattern containing "/" is matched against the absolute node path and
// supports "**". Path patterns are cleaned first, so "home//user/" reads as
// "/home/user". A bare pattern such as "*.txt" is matched against node names
// only, like find -name.
func (t *Tree) Find(pattern string) ([]Match, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}
	byName := !strings.Contains(pattern, "/")
	if !byName {
		pattern = paths.Clean(pattern)
	}

	matches := []Match{}
	err := t.Walk(func(path string, n *Node) error {
		subject := path
		if byName {
			subject = n.Name
		}
		ok, err := doublestar.Match(pattern, subject)
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, Match{Path: path, Kind: n.Kind})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}
