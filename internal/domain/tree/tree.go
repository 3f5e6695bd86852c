package tree

import (
	"github.com/GriffinCanCode/godisk/internal/shared/paths"
)

// Tree is a single-root folder/file hierarchy
type Tree struct {
	root *Node
}

// Stats summarizes the tree contents, root excluded
type Stats struct {
	Folders int `json:"folders"`
	Files   int `json:"files"`
}

// New creates a tree holding only the root folder
func New() *Tree {
	return &Tree{root: &Node{Name: RootName, Kind: Folder}}
}

// Root returns a deep copy of the root node
func (t *Tree) Root() *Node {
	return t.root.Clone()
}

// Clone returns a fully independent copy of the tree
func (t *Tree) Clone() *Tree {
	return &Tree{root: t.root.Clone()}
}

// Lookup returns a copy of the node at path
func (t *Tree) Lookup(path string) (*Node, bool) {
	n := t.resolve(paths.Split(path))
	if n == nil {
		return nil, false
	}
	return n.Clone(), true
}

// EnsurePath creates every missing segment of path. Intermediate segments are
// always folders; the final one gets kind. An existing final node is left
// untouched. It reports whether a node was created.
func (t *Tree) EnsurePath(path string, kind Kind) bool {
	parent, name, ok := paths.Parent(path)
	if !ok {
		return false
	}
	dir := t.ensureFolders(parent)
	if dir == nil {
		return false
	}
	if dir.Child(name) != nil {
		return false
	}
	dir.Children = append(dir.Children, &Node{Name: name, Kind: kind})
	return true
}

// Remove deletes the node at path together with its descendants
func (t *Tree) Remove(path string) bool {
	parentSegs, name, ok := paths.Parent(path)
	if !ok {
		return false
	}
	parent := t.resolve(parentSegs)
	if parent == nil || !parent.IsFolder() {
		return false
	}
	i, _ := parent.child(name)
	if i < 0 {
		return false
	}
	parent.detach(i)
	return true
}

// Rename replaces the name of the node at path. Children are unaffected.
// Renaming onto an existing sibling name is ignored.
func (t *Tree) Rename(path, newName string) bool {
	if !paths.ValidName(newName) {
		return false
	}
	parentSegs, name, ok := paths.Parent(path)
	if !ok {
		return false
	}
	parent := t.resolve(parentSegs)
	if parent == nil || !parent.IsFolder() {
		return false
	}
	n := parent.Child(name)
	if n == nil || name == newName || parent.Child(newName) != nil {
		return false
	}
	n.Name = newName
	return true
}

// Move detaches the node at path and appends it as the last child of
// destination, creating missing destination folders on the way.
func (t *Tree) Move(path, destination string) bool {
	parentSegs, name, ok := paths.Parent(path)
	if !ok {
		return false
	}
	parent := t.resolve(parentSegs)
	if parent == nil || !parent.IsFolder() {
		return false
	}
	i, n := parent.child(name)
	if n == nil {
		return false
	}
	// a folder cannot be moved below itself
	if paths.IsWithin(destination, path) {
		return false
	}
	destSegs := paths.Split(destination)
	if !t.reachable(destSegs) {
		return false
	}
	if dest := t.resolve(destSegs); dest != nil && dest != parent && dest.Child(name) != nil {
		return false
	}

	parent.detach(i)
	dest := t.ensureFolders(destSegs)
	dest.Children = append(dest.Children, n)
	return true
}

// Walk visits every node below the root in depth-first pre-order
func (t *Tree) Walk(fn func(path string, n *Node) error) error {
	return walk(t.root, nil, fn)
}

// Stats counts folders and files below the root
func (t *Tree) Stats() Stats {
	var s Stats
	_ = t.Walk(func(_ string, n *Node) error {
		if n.IsFolder() {
			s.Folders++
		} else {
			s.Files++
		}
		return nil
	})
	return s
}

func walk(n *Node, prefix []string, fn func(string, *Node) error) error {
	for _, c := range n.Children {
		segs := append(prefix[:len(prefix):len(prefix)], c.Name)
		if err := fn(paths.Join(segs), c); err != nil {
			return err
		}
		if err := walk(c, segs, fn); err != nil {
			return err
		}
	}
	return nil
}

// resolve walks segments from the root, returning nil when any is missing
func (t *Tree) resolve(segments []string) *Node {
	cur := t.root
	for _, s := range segments {
		cur = cur.Child(s)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// reachable reports whether ensureFolders(segments) would succeed
func (t *Tree) reachable(segments []string) bool {
	cur := t.root
	for _, s := range segments {
		next := cur.Child(s)
		if next == nil {
			return true
		}
		if !next.IsFolder() {
			return false
		}
		cur = next
	}
	return true
}

// ensureFolders returns the folder at segments, creating missing ones.
// It returns nil if an existing file blocks the way.
func (t *Tree) ensureFolders(segments []string) *Node {
	cur := t.root
	for _, s := range segments {
		next := cur.Child(s)
		if next == nil {
			next = &Node{Name: s, Kind: Folder}
			cur.Children = append(cur.Children, next)
		} else if !next.IsFolder() {
			return nil
		}
		cur = next
	}
	return cur
}
