// Package tree maintains the folder/file hierarchy shown by the explorer.
//
// The tree has exactly one root, named "/". Every operation addresses an
// absolute slash-separated path resolved segment by segment from the root with
// a linear scan of each node's children. A path that cannot be resolved is
// "not found", and every mutating operation treats that as a no-op rather than
// an error: the tree is rebuilt from backend output that may reference nodes
// the console never saw being created.
//
// Mutations keep three invariants:
//   - sibling names are unique
//   - files never hold children
//   - the root is never removed, renamed or moved
//
// A request that would break one of them is ignored.
package tree
