package disk

import "github.com/GriffinCanCode/godisk/internal/shared/paths"

// Partition is a named subdivision of a disk
type Partition struct {
	Name string `json:"name" yaml:"name"`
	Size string `json:"size" yaml:"size"`
}

// Disk is a simulated storage device identified by its path
type Disk struct {
	Name       string      `json:"name" yaml:"name"`
	Path       string      `json:"path" yaml:"path"`
	Size       string      `json:"size" yaml:"size"`
	Partitions []Partition `json:"partitions" yaml:"partitions"`
}

// HasPartition reports whether the disk owns a partition with the given name
func (d *Disk) HasPartition(name string) bool {
	for _, p := range d.Partitions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Registry is an insertion-ordered collection of disks keyed by path.
// The zero value is an empty registry ready to use.
type Registry struct {
	disks []Disk
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Upsert inserts a disk unless one with the same path already exists.
// It reports whether a disk was added.
func (r *Registry) Upsert(path, size string) bool {
	if r.index(path) >= 0 {
		return false
	}
	r.disks = append(r.disks, Disk{
		Name:       paths.Base(path),
		Path:       path,
		Size:       size,
		Partitions: []Partition{},
	})
	return true
}

// Remove deletes the disk with the given path.
// It reports whether a disk was removed.
func (r *Registry) Remove(path string) bool {
	i := r.index(path)
	if i < 0 {
		return false
	}
	r.disks = append(r.disks[:i], r.disks[i+1:]...)
	return true
}

// AppendPartitionToLast attaches a partition to the most recently inserted disk.
// Duplicates on that disk and an empty registry are no-ops.
func (r *Registry) AppendPartitionToLast(name, size string) bool {
	if len(r.disks) == 0 {
		return false
	}
	last := &r.disks[len(r.disks)-1]
	if last.HasPartition(name) {
		return false
	}
	last.Partitions = append(last.Partitions, Partition{Name: name, Size: size})
	return true
}

// Get returns a copy of the disk with the given path
func (r *Registry) Get(path string) (Disk, bool) {
	i := r.index(path)
	if i < 0 {
		return Disk{}, false
	}
	return cloneDisk(r.disks[i]), true
}

// List returns copies of all disks in insertion order
func (r *Registry) List() []Disk {
	out := make([]Disk, len(r.disks))
	for i, d := range r.disks {
		out[i] = cloneDisk(d)
	}
	return out
}

// Len returns the number of disks
func (r *Registry) Len() int {
	return len(r.disks)
}

// PartitionCount returns the number of partitions across all disks
func (r *Registry) PartitionCount() int {
	n := 0
	for _, d := range r.disks {
		n += len(d.Partitions)
	}
	return n
}

// Clone returns a fully independent copy of the registry
func (r *Registry) Clone() *Registry {
	return &Registry{disks: r.List()}
}

func (r *Registry) index(path string) int {
	for i := range r.disks {
		if r.disks[i].Path == path {
			return i
		}
	}
	return -1
}

func cloneDisk(d Disk) Disk {
	parts := make([]Partition, len(d.Partitions))
	copy(parts, d.Partitions)
	d.Partitions = parts
	return d
}
