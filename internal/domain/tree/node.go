package tree

// Kind distinguishes folders from files
type Kind string

const (
	Folder Kind = "folder"
	File   Kind = "file"
)

// RootName is the name of the root node
const RootName = "/"

// Node is a folder or file in the tree
type Node struct {
	Name     string  `json:"name" yaml:"name"`
	Kind     Kind    `json:"kind" yaml:"kind"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsFolder reports whether the node can hold children
func (n *Node) IsFolder() bool {
	return n.Kind == Folder
}

// Child returns the direct child with the given name
func (n *Node) Child(name string) *Node {
	_, c := n.child(name)
	return c
}

// Clone returns a deep copy of the node and its descendants
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Name: n.Name, Kind: n.Kind}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

func (n *Node) child(name string) (int, *Node) {
	for i, c := range n.Children {
		if c.Name == name {
			return i, c
		}
	}
	return -1, nil
}

func (n *Node) detach(i int) *Node {
	c := n.Children[i]
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	return c
}
