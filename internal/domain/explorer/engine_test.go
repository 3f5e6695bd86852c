package explorer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/godisk/internal/domain/disk"
	"github.com/GriffinCanCode/godisk/internal/domain/event"
	"github.com/GriffinCanCode/godisk/internal/domain/tree"
	tu "github.com/GriffinCanCode/godisk/internal/testutil"
)

func folder(name string, children ...*tree.Node) *tree.Node {
	return &tree.Node{Name: name, Kind: tree.Folder, Children: children}
}

func file(name string) *tree.Node {
	return &tree.Node{Name: name, Kind: tree.File}
}

func TestReconcileDiskCreated(t *testing.T) {
	text := "MKDISK: Disco creado exitosamente\n-> Path: /d/Disco1.mia\n-> Tamaño: 3000 KB\n"

	next, report := NewEngine().Reconcile(NewModel(), text)

	want := []disk.Disk{{Name: "Disco1.mia", Path: "/d/Disco1.mia", Size: "3000 KB", Partitions: []disk.Partition{}}}
	assert.Empty(t, cmp.Diff(want, next.Disks.List()))
	assert.Equal(t, 3, report.Lines)
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 0, report.Unrecognized)
}

func TestReconcileAccumulatesAcrossBatches(t *testing.T) {
	engine := NewEngine()
	first, _ := engine.Reconcile(NewModel(), "MKDISK: Disco creado exitosamente\n-> Path: /d/Disco1.mia\n-> Tamaño: 3000 KB\n")

	second, report := engine.Reconcile(first, "MKDIR: Directorio\n/home/user\n")

	assert.Equal(t, 1, report.Events[event.KindDirectoryCreated])
	assert.Equal(t, 1, second.Disks.Len())
	assert.Empty(t, cmp.Diff(folder("/", folder("home", folder("user"))), second.Tree.Root()))
}

func TestReconcileUnknownLinesAndMissingTargets(t *testing.T) {
	engine := NewEngine()
	prev, _ := engine.Reconcile(NewModel(), "MKDIR: Directorio\n/home\n")

	next, report := engine.Reconcile(prev, "LOGIN: ok\nREMOVE: -> /home/user\n")

	assert.Empty(t, cmp.Diff(prev.Tree.Root(), next.Tree.Root()))
	assert.Equal(t, 1, report.Unrecognized)
	assert.Equal(t, 1, report.Events[event.KindRemoved])
	assert.Equal(t, 0, report.Applied)
}

func TestReconcilePartitionOwnership(t *testing.T) {
	text := tu.NewOutput().
		Mkdisk("/d/A.mia", "10 KB").
		Fdisk("primaria", "p1", "2 KB").
		Mkdisk("/d/B.mia", "20 KB").
		Fdisk("", "p2", "4 KB").
		String()

	next, _ := NewEngine().Reconcile(NewModel(), text)

	a, ok := next.Disks.Get("/d/A.mia")
	require.True(t, ok)
	b, ok := next.Disks.Get("/d/B.mia")
	require.True(t, ok)

	assert.Equal(t, []disk.Partition{{Name: "p1", Size: "2 KB"}}, a.Partitions)
	assert.Equal(t, []disk.Partition{{Name: "p2", Size: "4 KB"}}, b.Partitions)
}

func TestReconcilePartitionBindsToEarlierBatch(t *testing.T) {
	engine := NewEngine()
	prev, _ := engine.Reconcile(NewModel(), tu.NewOutput().Mkdisk("/d/A.mia", "10 KB").String())

	next, _ := engine.Reconcile(prev, tu.NewOutput().Fdisk("", "p1", "1 KB").String())

	a, _ := next.Disks.Get("/d/A.mia")
	assert.True(t, a.HasPartition("p1"))
}

func TestReconcileDoesNotMutatePrevious(t *testing.T) {
	engine := NewEngine()
	prev, _ := engine.Reconcile(NewModel(), tu.NewOutput().
		Mkdisk("/d/A.mia", "10 KB").
		Mkdir("/home/user").
		String())
	before := prev.Snapshot()

	_, _ = engine.Reconcile(prev, tu.NewOutput().
		Fdisk("", "p1", "1 KB").
		Rmdisk("/d/A.mia").
		Remove("/home/user").
		Mkfile("/home/a.txt").
		String())

	assert.Empty(t, cmp.Diff(before, prev.Snapshot()))
}

func TestReconcileTreeOperations(t *testing.T) {
	text := tu.NewOutput().
		Mkdir("/home/user/docs").
		Mkfile("/home/user/docs/a.txt").
		Mkdir("/tmp").
		Rename("/home/user/docs/a.txt", "b.txt").
		Move("/home/user/docs", "/tmp").
		Remove("/home/user").
		String()

	next, report := NewEngine().Reconcile(NewModel(), text)

	want := folder("/",
		folder("home"),
		folder("tmp", folder("docs", file("b.txt"))),
	)
	assert.Empty(t, cmp.Diff(want, next.Tree.Root()))
	assert.Equal(t, 6, report.Applied)
	assert.Equal(t, 0, report.Unrecognized)
}

func TestReconcileDiskRemoval(t *testing.T) {
	text := tu.NewOutput().
		Mkdisk("/d/A.mia", "10 KB").
		Mkdisk("/d/B.mia", "10 KB").
		Rmdisk("/d/A.mia").
		Line("RMDISK: Disco eliminado correctamente -> Path: /d/missing.mia").
		String()

	next, report := NewEngine().Reconcile(NewModel(), text)

	require.Equal(t, 1, next.Disks.Len())
	assert.Equal(t, "B.mia", next.Disks.List()[0].Name)
	assert.Equal(t, 2, report.Events[event.KindDiskRemoved])
	assert.Equal(t, 3, report.Applied)
}

func TestReconcileEmptyText(t *testing.T) {
	next, report := NewEngine().Reconcile(Model{}, "")

	assert.Equal(t, 0, next.Disks.Len())
	assert.Empty(t, cmp.Diff(folder("/"), next.Tree.Root()))
	assert.Equal(t, Report{Events: map[event.Kind]int{}}, report)
}

func TestReportLabels(t *testing.T) {
	r := Report{Events: map[event.Kind]int{event.KindMoved: 2, event.KindDiskCreated: 1}}

	assert.Equal(t, 3, r.Recognized())
	assert.Equal(t, map[string]int{"moved": 2, "disk_created": 1}, r.Labels())
}
