package rng

import (
	"fmt"
	"hash/fnv"
)

// Partition derives isolated seeds for independent runs from one master seed.
//
// Derivation formula: derived = master XOR fnv1a64(name).
// The same (master, name) pair always yields the same seed, independent of the
// order in which names are requested, so replications can run in any order or
// in parallel without changing their streams.
type Partition struct {
	master int64
}

// NewPartition creates a Partition from a master seed.
func NewPartition(master int64) *Partition {
	return &Partition{master: master}
}

// Seed returns the derived seed for the named stream.
func (p *Partition) Seed(name string) int64 {
	return p.master ^ fnv1a64(name)
}

// Replication returns the derived seed for replication i.
func (p *Partition) Replication(i int) int64 {
	return p.Seed(ReplicationName(i))
}

// Master returns the master seed.
func (p *Partition) Master() int64 {
	return p.master
}

// ReplicationName returns the stream name for replication i.
func ReplicationName(i int) string {
	return fmt.Sprintf("replication_%d", i)
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
