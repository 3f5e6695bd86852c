// Package disk maintains the flat registry of simulated disks and their
// partitions as reconstructed from backend output.
//
// Every operation is best-effort: a missing target is a silent no-op, because
// the registry is rebuilt from an informational log rather than a
// transactional ledger.
//
// Partition ownership is inferred from emission order. The backend's
// partition confirmation never names the owning disk, so a new partition is
// attached to the most recently inserted disk. This breaks if the backend ever
// interleaves disk creation across commands; the limitation is kept on purpose
// instead of guessing a general foreign key.
package disk
