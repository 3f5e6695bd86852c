package explorer

import (
	"github.com/GriffinCanCode/godisk/internal/domain/disk"
	"github.com/GriffinCanCode/godisk/internal/domain/tree"
)

// Model is the reconstructed view of the simulated file system
type Model struct {
	Disks *disk.Registry
	Tree  *tree.Tree
}

// Snapshot is the serializable form of a Model
type Snapshot struct {
	Disks []disk.Disk `json:"disks" yaml:"disks"`
	Tree  *tree.Node  `json:"tree" yaml:"tree"`
}

// NewModel returns an empty model: no disks and a tree holding only the root
func NewModel() Model {
	return Model{
		Disks: disk.NewRegistry(),
		Tree:  tree.New(),
	}
}

// Clone returns a fully independent copy. Missing parts are replaced by
// empty ones, so the zero Model clones to NewModel().
func (m Model) Clone() Model {
	out := NewModel()
	if m.Disks != nil {
		out.Disks = m.Disks.Clone()
	}
	if m.Tree != nil {
		out.Tree = m.Tree.Clone()
	}
	return out
}

// Snapshot copies the model into plain values
func (m Model) Snapshot() Snapshot {
	c := m.Clone()
	return Snapshot{
		Disks: c.Disks.List(),
		Tree:  c.Tree.Root(),
	}
}
