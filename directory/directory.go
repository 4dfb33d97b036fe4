// Package directory implements name lookup and name-creation within the
// single root directory's one data block (spec §4.3). Grounded on
// fuse/nodefs/inode.go's addChild/GetChild/rmChild linear-scan-by-name
// shape, generalized from a live map[string]*Inode tree to the spec's
// fixed on-arena slot array: directory content lives in a block.Store
// block addressed through the parent inode, not in a Go map.
package directory

import (
	"github.com/tfsproj/tfs/block"
	"github.com/tfsproj/tfs/config"
	"github.com/tfsproj/tfs/inode"
)

// Directory resolves names within inode-table directories. In this
// single-directory filesystem the only directory ever addressed is the
// root, but Find/CreateIn take an explicit parent inumber so the scan
// logic itself doesn't hardcode that assumption.
type Directory struct {
	inodes *inode.Table
	blocks *block.Store
}

// New creates a Directory bound to the given inode table and block
// store.
func New(inodes *inode.Table, blocks *block.Store) *Directory {
	return &Directory{inodes: inodes, blocks: blocks}
}

// Find returns the inumber of the entry named name within parentInumber's
// directory (§4.3). Fails with inode.ErrInvalidInum on a bad inumber,
// inode.ErrNotDirectory if parentInumber isn't a directory, or
// ErrNotFound if no entry matches.
func (d *Directory) Find(parentInumber int, name string) (int, error) {
	parent, err := d.inodes.At(parentInumber)
	if err != nil {
		return 0, err
	}
	parent.RLock()
	defer parent.RUnlock()
	if parent.Type() != inode.Directory {
		return 0, inode.ErrNotDirectory
	}
	child, _, found := d.scanLocked(parent, name)
	if !found {
		return 0, ErrNotFound
	}
	return child, nil
}

// CreateIn looks up name in parentInumber's directory; if present, it
// returns the existing inumber (create is idempotent on name — this is
// intentional, and is exploited by open(..., CREATE), §4.3). If absent,
// it creates a new inode of typ and writes name into the first empty
// slot.
func (d *Directory) CreateIn(parentInumber int, typ inode.Type, name string) (int, error) {
	if name == "" {
		return 0, ErrEmptyName
	}
	parent, err := d.inodes.At(parentInumber)
	if err != nil {
		return 0, err
	}

	parent.Lock()
	defer parent.Unlock()
	if parent.Type() != inode.Directory {
		return 0, inode.ErrNotDirectory
	}

	if child, _, found := d.scanLocked(parent, name); found {
		return child, nil
	}

	slot, full := d.firstEmptySlotLocked(parent)
	if full {
		return 0, ErrDirFull
	}

	child, err := d.inodes.Create(typ)
	if err != nil {
		return 0, err
	}

	buf, _ := d.blocks.Address(parent.ContentBlock())
	inode.EncodeDirEntry(buf[slot*config.DirEntrySize:], name, child)
	return child, nil
}

// scanLocked performs the §4.3 linear scan: first matching non-empty
// entry wins. The caller must hold at least a read lock on parent.
func (d *Directory) scanLocked(parent *inode.Inode, name string) (childInumber, slot int, found bool) {
	want := inode.TruncateName(name)
	buf, _ := d.blocks.Address(parent.ContentBlock())
	for i := 0; i < config.MaxDirEntries; i++ {
		entryName, inumber := inode.DecodeDirEntry(buf[i*config.DirEntrySize:])
		if inumber != config.EmptyInumber && entryName == want {
			return inumber, i, true
		}
	}
	return 0, 0, false
}

// firstEmptySlotLocked finds the first slot whose inumber is the empty
// sentinel. The caller must hold the write lock on parent.
func (d *Directory) firstEmptySlotLocked(parent *inode.Inode) (slot int, full bool) {
	buf, _ := d.blocks.Address(parent.ContentBlock())
	for i := 0; i < config.MaxDirEntries; i++ {
		_, inumber := inode.DecodeDirEntry(buf[i*config.DirEntrySize:])
		if inumber == config.EmptyInumber {
			return i, false
		}
	}
	return 0, true
}
