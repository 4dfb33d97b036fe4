package inode

import (
	"encoding/binary"
	"sync"

	"github.com/tfsproj/tfs/block"
	"github.com/tfsproj/tfs/config"
	"github.com/tfsproj/tfs/internal/latency"
)

// Table is the fixed-size array of inode slots plus its free/taken
// bitmap (§3, §4.2). The per-slot reader/writer lock doubles as the
// "lock table" of §2 item 3 — embedded directly in Inode rather than a
// side structure, the same choice fuse/nodefs/inode.go makes for
// openFilesMutex.
type Table struct {
	blocks *block.Store
	delay  int

	mu    sync.Mutex
	taken []bool
	slots []Inode
}

// New creates a Table of config.InodeTableSize slots, all initially free.
func New(blocks *block.Store, delay int) *Table {
	return &Table{
		blocks: blocks,
		delay:  delay,
		taken:  make([]bool, config.InodeTableSize),
		slots:  make([]Inode, config.InodeTableSize),
	}
}

// validate reports whether inumber names a currently-taken slot, without
// acquiring that slot's own lock — resolving design note 4 (a correct
// reimplementation validates before indexing into the lock table).
func (t *Table) validate(inumber int) error {
	if inumber < 0 || inumber >= len(t.taken) {
		return ErrInvalidInum
	}
	latency.Tick(t.delay)
	t.mu.Lock()
	ok := t.taken[inumber]
	t.mu.Unlock()
	if !ok {
		return ErrInvalidInum
	}
	return nil
}

// At returns the inode slot for inumber. The caller is responsible for
// taking whatever lock (Lock/RLock) the intended operation requires —
// At itself never acquires the per-inode lock, mirroring step 2 of §4.5
// ("resolve inode pointer from F's inumber") which runs before any
// per-inode lock is taken.
func (t *Table) At(inumber int) (*Inode, error) {
	if err := t.validate(inumber); err != nil {
		return nil, err
	}
	return &t.slots[inumber], nil
}

// Create allocates a free inode slot, sets its type, and for a
// directory inode extends it with one data block whose entries are all
// initialized to the empty sentinel (§4.2).
func (t *Table) Create(typ Type) (int, error) {
	t.mu.Lock()
	idx := -1
	for i, busy := range t.taken {
		latency.Tick(t.delay)
		if !busy {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.mu.Unlock()
		return 0, ErrNoFreeSlot
	}
	t.taken[idx] = true
	t.mu.Unlock()

	n := &t.slots[idx]
	n.Lock()
	n.reset(typ)
	n.Unlock()

	if typ == Directory {
		blockIdx, ok := t.blocks.Allocate()
		if !ok {
			t.mu.Lock()
			t.taken[idx] = false
			t.mu.Unlock()
			return 0, ErrNoFreeBlock
		}
		buf, _ := t.blocks.Address(blockIdx)
		for i := 0; i < config.MaxDirEntries; i++ {
			EncodeDirEntry(buf[i*config.DirEntrySize:], "", config.EmptyInumber)
		}

		n.Lock()
		n.direct[0] = blockIdx
		n.blockCount = 1
		n.Unlock()
	}
	return idx, nil
}

// Delete frees every data block referenced by inumber's inode (directs,
// indirect references, then the indirect block itself) and returns the
// slot to FREE. Held locks: the table mutex and the inode's write lock
// simultaneously, the one case the lock hierarchy (§5) explicitly
// allows nesting (3) inside (1).
func (t *Table) Delete(inumber int) error {
	if inumber < 0 || inumber >= len(t.taken) {
		return ErrInvalidInum
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.taken[inumber] {
		return ErrInvalidInum
	}

	n := &t.slots[inumber]
	n.Lock()
	t.freeBlocksLocked(n)
	n.blockCount = 0
	n.size = 0
	n.indirectBlock = config.EmptyInumber
	n.Unlock()

	t.taken[inumber] = false
	return nil
}

// Clear performs the same block-freeing as Delete but keeps the slot
// TAKEN, resetting size and block_count to 0 (used for truncate-on-open).
func (t *Table) Clear(inumber int) error {
	if err := t.validate(inumber); err != nil {
		return err
	}
	n := &t.slots[inumber]
	n.Lock()
	defer n.Unlock()
	t.freeBlocksLocked(n)
	n.blockCount = 0
	n.size = 0
	n.indirectBlock = config.EmptyInumber
	return nil
}

// freeBlocksLocked frees every block owned by n (direct, then indirect
// references, then the indirect block itself). Caller must hold n's
// write lock.
func (t *Table) freeBlocksLocked(n *Inode) {
	directCount := n.blockCount
	if directCount > config.InodeDirectRefs {
		directCount = config.InodeDirectRefs
	}
	for i := 0; i < directCount; i++ {
		t.blocks.Free(n.direct[i])
	}
	if n.blockCount > config.InodeDirectRefs {
		indirectBuf, _ := t.blocks.Address(n.indirectBlock)
		refs := n.blockCount - config.InodeDirectRefs
		for i := 0; i < refs; i++ {
			idx := decodeBlockIndex(indirectBuf, i)
			t.blocks.Free(idx)
		}
		t.blocks.Free(n.indirectBlock)
	}
}

// Extend allocates a new data block for inumber and assigns it as the
// next direct or indirect reference (§4.2). The caller must already hold
// the inode's write lock (extend is invoked mid-write, per §4.5 step 7).
func (t *Table) Extend(inumber int) (int, error) {
	if err := t.validate(inumber); err != nil {
		return 0, err
	}
	n := &t.slots[inumber]
	if n.blockCount >= config.InodeDirectRefs+config.MaxIndirectRefs {
		return 0, ErrIndirectFull
	}

	blockIdx, ok := t.blocks.Allocate()
	if !ok {
		return 0, ErrNoFreeBlock
	}

	if n.blockCount < config.InodeDirectRefs {
		n.direct[n.blockCount] = blockIdx
		n.blockCount++
		return blockIdx, nil
	}

	if n.blockCount == config.InodeDirectRefs {
		indirectIdx, ok := t.blocks.Allocate()
		if !ok {
			t.blocks.Free(blockIdx)
			return 0, ErrNoFreeBlock
		}
		n.indirectBlock = indirectIdx
	}

	indirectBuf, _ := t.blocks.Address(n.indirectBlock)
	pos := n.blockCount - config.InodeDirectRefs
	encodeBlockIndex(indirectBuf, pos, blockIdx)
	n.blockCount++
	return blockIdx, nil
}

// BlockAt returns the physical block index covering logicalIndex within
// inumber's file (§4.2). The caller must hold at least a read lock on
// the inode.
func (t *Table) BlockAt(inumber, logicalIndex int) (int, error) {
	if err := t.validate(inumber); err != nil {
		return 0, err
	}
	n := &t.slots[inumber]
	if logicalIndex < 0 || logicalIndex >= n.blockCount {
		return 0, ErrBlockIndexOOB
	}
	if logicalIndex < config.InodeDirectRefs {
		return n.direct[logicalIndex], nil
	}
	indirectBuf, _ := t.blocks.Address(n.indirectBlock)
	return decodeBlockIndex(indirectBuf, logicalIndex-config.InodeDirectRefs), nil
}

func encodeBlockIndex(buf []byte, pos, value int) {
	binary.LittleEndian.PutUint32(buf[pos*config.BlockIndexSize:], uint32(int32(value)))
}

func decodeBlockIndex(buf []byte, pos int) int {
	return int(int32(binary.LittleEndian.Uint32(buf[pos*config.BlockIndexSize:])))
}
