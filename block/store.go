// Package block implements the fixed-size block arena and its
// bitmap allocator (spec §4.1). Grounded on fuse.BufferPoolImpl
// (fuse/bufferpool.go): a mutex guarding allocation bookkeeping over a
// backing store whose addresses stay stable for the arena's lifetime.
package block

import (
	"sync"

	"github.com/tfsproj/tfs/internal/latency"
)

// Store is a fixed-size arena of equally-sized byte blocks plus a
// free/taken bitmap (§3: "Data block"). The zero value is not usable;
// construct with New.
type Store struct {
	blockSize int
	delay     int

	mu    sync.Mutex
	taken []bool

	arena [][]byte
}

// New creates a Store of count blocks of blockSize bytes each, all
// initially free. Block contents are not zeroed (§4.1 policy) — the
// backing slices come from make(), which does zero them once, but no
// caller may rely on that after a block has been freed and reallocated.
func New(count, blockSize, delay int) *Store {
	s := &Store{
		blockSize: blockSize,
		delay:     delay,
		taken:     make([]bool, count),
		arena:     make([][]byte, count),
	}
	for i := range s.arena {
		s.arena[i] = make([]byte, blockSize)
	}
	return s
}

// BlockSize returns the fixed size of every block in the store.
func (s *Store) BlockSize() int {
	return s.blockSize
}

// Count returns the number of blocks in the arena.
func (s *Store) Count() int {
	return len(s.arena)
}

// Allocate scans the bitmap for the first free entry, marks it taken,
// and returns its index. Returns ok=false if none are free.
func (s *Store) Allocate() (index int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, busy := range s.taken {
		latency.Tick(s.delay)
		if !busy {
			s.taken[i] = true
			return i, true
		}
	}
	return 0, false
}

// Free marks block_index as free. Returns false if the index is
// out of range. Freeing an already-free block is not an error; callers
// must not double-free a block still owned by an inode.
func (s *Store) Free(blockIndex int) bool {
	if blockIndex < 0 || blockIndex >= len(s.taken) {
		return false
	}
	s.mu.Lock()
	s.taken[blockIndex] = false
	s.mu.Unlock()
	return true
}

// Address returns the backing byte slice for block_index. Lock-free:
// the arena's backing memory is fixed for the Store's lifetime, so the
// returned slice is stable regardless of concurrent Allocate/Free calls.
func (s *Store) Address(blockIndex int) ([]byte, bool) {
	if blockIndex < 0 || blockIndex >= len(s.arena) {
		return nil, false
	}
	latency.Tick(s.delay)
	return s.arena[blockIndex], true
}
