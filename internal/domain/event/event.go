package event

// Kind names an event variant
type Kind string

const (
	KindDiskCreated      Kind = "disk_created"
	KindDiskRemoved      Kind = "disk_removed"
	KindPartitionCreated Kind = "partition_created"
	KindDirectoryCreated Kind = "directory_created"
	KindFileCreated      Kind = "file_created"
	KindRemoved          Kind = "removed"
	KindRenamed          Kind = "renamed"
	KindMoved            Kind = "moved"
	KindUnrecognized     Kind = "unrecognized"
)

// Kinds lists every recognized variant, Unrecognized excluded
func Kinds() []Kind {
	return []Kind{
		KindDiskCreated,
		KindDiskRemoved,
		KindPartitionCreated,
		KindDirectoryCreated,
		KindFileCreated,
		KindRemoved,
		KindRenamed,
		KindMoved,
	}
}

// Event is one typed operation recovered from backend output.
// The set of implementations is closed.
type Event interface {
	Kind() Kind
	sealed()
}

// DiskCreated reports a new simulated disk
type DiskCreated struct {
	Path string
	Size string
}

// DiskRemoved reports a deleted disk
type DiskRemoved struct {
	Path string
}

// PartitionCreated reports a new partition on the most recently created disk
type PartitionCreated struct {
	Name string
	Size string
}

// DirectoryCreated reports a new folder path
type DirectoryCreated struct {
	Path string
}

// FileCreated reports a new file path
type FileCreated struct {
	Path string
}

// Removed reports a deleted file or folder
type Removed struct {
	Path string
}

// Renamed reports a file or folder renamed in place
type Renamed struct {
	Path    string
	NewName string
}

// Moved reports a file or folder relocated under another folder
type Moved struct {
	From string
	To   string
}

// Unrecognized is a line that matched no marker
type Unrecognized struct {
	Line string
}

func (DiskCreated) Kind() Kind      { return KindDiskCreated }
func (DiskRemoved) Kind() Kind      { return KindDiskRemoved }
func (PartitionCreated) Kind() Kind { return KindPartitionCreated }
func (DirectoryCreated) Kind() Kind { return KindDirectoryCreated }
func (FileCreated) Kind() Kind      { return KindFileCreated }
func (Removed) Kind() Kind          { return KindRemoved }
func (Renamed) Kind() Kind          { return KindRenamed }
func (Moved) Kind() Kind            { return KindMoved }
func (Unrecognized) Kind() Kind     { return KindUnrecognized }

func (DiskCreated) sealed()      {}
func (DiskRemoved) sealed()      {}
func (PartitionCreated) sealed() {}
func (DirectoryCreated) sealed() {}
func (FileCreated) sealed()      {}
func (Removed) sealed()          {}
func (Renamed) sealed()          {}
func (Moved) sealed()            {}
func (Unrecognized) sealed()     {}
