package disk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsert(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.Upsert("/home/disks/Disco1.mia", "3000 KB"))

	d, ok := r.Get("/home/disks/Disco1.mia")
	require.True(t, ok)
	assert.Equal(t, "Disco1.mia", d.Name)
	assert.Equal(t, "3000 KB", d.Size)
	assert.Empty(t, d.Partitions)
	assert.NotNil(t, d.Partitions)
}

func TestUpsertIsIdempotent(t *testing.T) {
	r := NewRegistry()

	r.Upsert("/d/A.mia", "10 MB")
	assert.False(t, r.Upsert("/d/A.mia", "20 MB"))
	assert.False(t, r.Upsert("/d/A.mia", "10 MB"))

	require.Equal(t, 1, r.Len())
	d, _ := r.Get("/d/A.mia")
	assert.Equal(t, "10 MB", d.Size, "existing disk must not be overwritten")
}

func TestListPreservesInsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.Upsert("/d/B.mia", "1")
	r.Upsert("/d/A.mia", "2")
	r.Upsert("/d/C.mia", "3")

	var names []string
	for _, d := range r.List() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"B.mia", "A.mia", "C.mia"}, names)
}

func TestRemove(t *testing.T) {
	r := NewRegistry()
	r.Upsert("/d/A.mia", "1")
	r.Upsert("/d/B.mia", "2")

	assert.True(t, r.Remove("/d/A.mia"))
	assert.False(t, r.Remove("/d/A.mia"))
	assert.False(t, r.Remove("/d/missing.mia"))

	list := r.List()
	require.Len(t, list, 1)
	assert.Equal(t, "/d/B.mia", list[0].Path)
}

func TestAppendPartitionToLast(t *testing.T) {
	t.Run("no disks", func(t *testing.T) {
		r := NewRegistry()
		assert.False(t, r.AppendPartitionToLast("p1", "1 MB"))
		assert.Equal(t, 0, r.Len())
	})

	t.Run("binds to most recent disk", func(t *testing.T) {
		r := NewRegistry()
		r.Upsert("/d/A.mia", "1")
		assert.True(t, r.AppendPartitionToLast("p1", "100 bytes"))
		r.Upsert("/d/B.mia", "2")
		assert.True(t, r.AppendPartitionToLast("p2", "200 bytes"))

		a, _ := r.Get("/d/A.mia")
		b, _ := r.Get("/d/B.mia")
		assert.Equal(t, []Partition{{Name: "p1", Size: "100 bytes"}}, a.Partitions)
		assert.Equal(t, []Partition{{Name: "p2", Size: "200 bytes"}}, b.Partitions)
	})

	t.Run("skips duplicate name", func(t *testing.T) {
		r := NewRegistry()
		r.Upsert("/d/A.mia", "1")
		r.AppendPartitionToLast("p1", "100")
		assert.False(t, r.AppendPartitionToLast("p1", "999"))

		a, _ := r.Get("/d/A.mia")
		assert.Equal(t, []Partition{{Name: "p1", Size: "100"}}, a.Partitions)
		assert.Equal(t, 1, r.PartitionCount())
	})

	t.Run("upserting an existing disk does not move ownership", func(t *testing.T) {
		r := NewRegistry()
		r.Upsert("/d/A.mia", "1")
		r.Upsert("/d/B.mia", "2")
		r.Upsert("/d/A.mia", "1")
		r.AppendPartitionToLast("p1", "100")

		b, _ := r.Get("/d/B.mia")
		assert.True(t, b.HasPartition("p1"))
	})
}

func TestCloneIsIndependent(t *testing.T) {
	r := NewRegistry()
	r.Upsert("/d/A.mia", "1")
	r.AppendPartitionToLast("p1", "100")

	c := r.Clone()
	c.AppendPartitionToLast("p2", "200")
	c.Upsert("/d/B.mia", "2")

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, r.PartitionCount())
	assert.Equal(t, 2, c.Len())
}

func TestListReturnsCopies(t *testing.T) {
	r := NewRegistry()
	r.Upsert("/d/A.mia", "1")
	r.AppendPartitionToLast("p1", "100")

	list := r.List()
	list[0].Partitions[0].Name = "mutated"
	list[0].Size = "mutated"

	d, _ := r.Get("/d/A.mia")
	assert.Equal(t, "p1", d.Partitions[0].Name)
	assert.Equal(t, "1", d.Size)
}
