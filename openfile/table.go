// Package openfile implements the open-file table: a fixed-size array of
// open-file entries with per-handle cursors and append flags, plus the
// "wait until every handle has closed" teardown barrier (spec §4.4,
// §4.6). Grounded directly on fuse/nodefs/handle.go's portableHandleMap:
// a slot array guarded by one table-wide mutex, free slots tracked for
// reuse, generalized here from a growable handle map to the spec's
// fixed-size table plus a condition-variable open count.
package openfile

import (
	"sync"

	"github.com/tfsproj/tfs/config"
)

// Entry is a single open-file-table slot (§3). Offset and the append
// flag are guarded by the entry's own mutex, separate from the table's
// mutex, matching the lock hierarchy's per-entry tier (§5 item 4).
type Entry struct {
	mu sync.Mutex

	inumber int
	appends bool
	offset  int
}

// Lock acquires the entry's mutex (§4.5 step 1).
func (e *Entry) Lock() { e.mu.Lock() }

// Unlock releases the entry's mutex.
func (e *Entry) Unlock() { e.mu.Unlock() }

// Inumber returns the inode this entry refers to. Caller must hold the
// entry's lock.
func (e *Entry) Inumber() int { return e.inumber }

// Append reports whether this handle was opened in append mode. Caller
// must hold the entry's lock.
func (e *Entry) Append() bool { return e.appends }

// Offset returns the entry's current byte cursor. Caller must hold the
// entry's lock.
func (e *Entry) Offset() int { return e.offset }

// SetOffset updates the entry's byte cursor. Caller must hold the
// entry's lock.
func (e *Entry) SetOffset(offset int) { e.offset = offset }

// Table is the fixed-size open-file table plus the open-count barrier
// used by DestroyAfterAllClosed (§4.4, §4.6).
type Table struct {
	mu    sync.Mutex
	cond  *sync.Cond
	taken []bool
	slots []Entry
	count int
}

// New creates a Table of config.MaxOpenFiles slots, all initially free.
func New() *Table {
	t := &Table{
		taken: make([]bool, config.MaxOpenFiles),
		slots: make([]Entry, config.MaxOpenFiles),
	}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// OpenEntry claims the first free slot, stores inumber and the append
// flag, and resets the cursor to zero (§4.4).
func (t *Table) OpenEntry(inumber int, appends bool) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i, busy := range t.taken {
		if !busy {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, ErrTableFull
	}

	t.taken[idx] = true
	e := &t.slots[idx]
	e.inumber = inumber
	e.appends = appends
	e.offset = 0
	t.count++
	return idx, nil
}

// CloseEntry marks handle FREE. If the open count reaches zero, it
// signals the teardown condition (§4.4, §4.6).
func (t *Table) CloseEntry(handle int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if handle < 0 || handle >= len(t.taken) || !t.taken[handle] {
		return ErrInvalidHandle
	}
	t.taken[handle] = false
	t.count--
	if t.count == 0 {
		t.cond.Broadcast()
	}
	return nil
}

// At returns the entry for handle, or ErrInvalidHandle if handle is out
// of range or not currently open. Like inode.Table.At, it does not
// itself acquire the entry's own lock — callers take that separately,
// per §4.5 step 1.
func (t *Table) At(handle int) (*Entry, error) {
	t.mu.Lock()
	ok := handle >= 0 && handle < len(t.taken) && t.taken[handle]
	t.mu.Unlock()
	if !ok {
		return nil, ErrInvalidHandle
	}
	return &t.slots[handle], nil
}

// OpenCount returns the number of currently-open slots.
func (t *Table) OpenCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// WaitUntilAllClosed blocks until OpenCount reaches zero. It loops
// around the condition-variable predicate rather than trusting a single
// wake, per design note 1 (the source's corresponding wait is a latent
// defect this reimplementation does not reproduce).
func (t *Table) WaitUntilAllClosed() {
	t.mu.Lock()
	for t.count != 0 {
		t.cond.Wait()
	}
	t.mu.Unlock()
}
