package inode

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/tfsproj/tfs/block"
	"github.com/tfsproj/tfs/config"
)

func newTestTable() (*Table, *block.Store) {
	bs := block.New(config.DataBlocks, config.BlockSize, 0)
	return New(bs, 0), bs
}

func TestCreateFile(t *testing.T) {
	tbl, _ := newTestTable()
	inum, err := tbl.Create(File)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	n, err := tbl.At(inum)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	n.RLock()
	defer n.RUnlock()
	if n.Type() != File || n.Size() != 0 || n.BlockCount() != 0 {
		t.Errorf("unexpected fresh file inode: %s", pretty.Sprint(n))
	}
}

func TestCreateDirectoryBlanksEntries(t *testing.T) {
	tbl, bs := newTestTable()
	inum, err := tbl.Create(Directory)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	n, _ := tbl.At(inum)
	n.RLock()
	blockIdx := n.direct[0]
	blockCount := n.BlockCount()
	n.RUnlock()

	if blockCount != 1 {
		t.Fatalf("expected block_count=1 for a fresh directory, got %d", blockCount)
	}
	buf, _ := bs.Address(blockIdx)
	for i := 0; i < config.MaxDirEntries; i++ {
		name, inumber := DecodeDirEntry(buf[i*config.DirEntrySize:])
		if name != "" || inumber != config.EmptyInumber {
			t.Fatalf("entry %d not blank: name=%q inumber=%d", i, name, inumber)
		}
	}
}

func TestExtendDirectThenIndirect(t *testing.T) {
	tbl, _ := newTestTable()
	inum, _ := tbl.Create(File)
	n, _ := tbl.At(inum)

	n.Lock()
	for i := 0; i < config.InodeDirectRefs; i++ {
		if _, err := tbl.Extend(inum); err != nil {
			t.Fatalf("Extend direct %d: %v", i, err)
		}
	}
	if n.indirectBlock != config.EmptyInumber {
		t.Fatalf("indirect block should still be unset after filling direct refs")
	}

	if _, err := tbl.Extend(inum); err != nil {
		t.Fatalf("Extend crossing into indirect: %v", err)
	}
	if n.indirectBlock == config.EmptyInumber {
		t.Fatalf("indirect block should now be allocated")
	}
	if n.BlockCount() != config.InodeDirectRefs+1 {
		t.Fatalf("expected block_count=%d, got %d", config.InodeDirectRefs+1, n.BlockCount())
	}
	n.Unlock()
}

func TestExtendExhaustion(t *testing.T) {
	tbl, _ := newTestTable()
	inum, _ := tbl.Create(File)
	n, _ := tbl.At(inum)

	n.Lock()
	defer n.Unlock()
	max := config.InodeDirectRefs + config.MaxIndirectRefs
	for i := 0; i < max; i++ {
		if _, err := tbl.Extend(inum); err != nil {
			t.Fatalf("Extend %d: unexpected error %v", i, err)
		}
	}
	if _, err := tbl.Extend(inum); err != ErrIndirectFull {
		t.Fatalf("expected ErrIndirectFull once block_count hits %d, got %v", max, err)
	}
}

func TestBlockAtOutOfRange(t *testing.T) {
	tbl, _ := newTestTable()
	inum, _ := tbl.Create(File)
	n, _ := tbl.At(inum)
	n.Lock()
	if _, err := tbl.BlockAt(inum, 0); err != ErrBlockIndexOOB {
		t.Fatalf("expected ErrBlockIndexOOB on empty file, got %v", err)
	}
	n.Unlock()
}

func TestDeleteFreesBlocksAndSlot(t *testing.T) {
	tbl, bs := newTestTable()
	inum, _ := tbl.Create(File)
	n, _ := tbl.At(inum)

	n.Lock()
	blockIdx, err := tbl.Extend(inum)
	n.Unlock()
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}

	if err := tbl.Delete(inum); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := tbl.At(inum); err != ErrInvalidInum {
		t.Fatalf("expected slot to be free after delete, At returned %v", err)
	}
	if got, ok := bs.Allocate(); !ok || got != blockIdx {
		t.Fatalf("expected block %d to be free after delete and reused first-fit, got %d ok=%v", blockIdx, got, ok)
	}
	if !bs.Free(blockIdx) {
		t.Fatalf("block %d should still exist in the arena (double-free is allowed, not required to fail)", blockIdx)
	}
}

func TestDeleteInvalidInumber(t *testing.T) {
	tbl, _ := newTestTable()
	if err := tbl.Delete(-1); err != ErrInvalidInum {
		t.Fatalf("expected ErrInvalidInum for negative inumber, got %v", err)
	}
	if err := tbl.Delete(config.InodeTableSize); err != ErrInvalidInum {
		t.Fatalf("expected ErrInvalidInum for out-of-range inumber, got %v", err)
	}
	if err := tbl.Delete(5); err != ErrInvalidInum {
		t.Fatalf("expected ErrInvalidInum for a never-allocated slot, got %v", err)
	}
}

func TestClearKeepsSlotTaken(t *testing.T) {
	tbl, _ := newTestTable()
	inum, _ := tbl.Create(File)
	n, _ := tbl.At(inum)

	n.Lock()
	tbl.Extend(inum)
	n.SetSize(5)
	n.Unlock()

	if err := tbl.Clear(inum); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	n, err := tbl.At(inum)
	if err != nil {
		t.Fatalf("slot should remain taken after Clear: %v", err)
	}
	n.RLock()
	defer n.RUnlock()
	if n.Size() != 0 || n.BlockCount() != 0 {
		t.Fatalf("expected size=0 block_count=0 after Clear, got size=%d block_count=%d", n.Size(), n.BlockCount())
	}
}
