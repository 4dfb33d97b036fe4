// Package inode implements the inode table and its indirect-block
// indexing scheme (spec §4.2). Grounded on fuse/nodefs/inode.go's Inode
// struct — a slot that owns its own synchronization primitive rather than
// being protected by a side table — generalized from a live
// map[string]*Inode tree to the spec's fixed direct/indirect block
// reference arrays.
package inode

import (
	"encoding/binary"
	"sync"

	"github.com/tfsproj/tfs/config"
)

// Type is the inode's kind (§3).
type Type int

const (
	File Type = iota
	Directory
)

// Inode is a single inode-table slot (§3). The zero value is not a valid
// free slot on its own; Table tracks slot liveness separately from this
// struct's fields.
type Inode struct {
	mu sync.RWMutex

	typ        Type
	size       int
	blockCount int
	direct     [config.InodeDirectRefs]int
	// indirectBlock is the index of the data block holding further
	// block references, or config.EmptyInumber when unset.
	indirectBlock int
}

// Lock acquires the inode's write lock (§4.5 step 3, write path).
func (n *Inode) Lock() { n.mu.Lock() }

// Unlock releases the inode's write lock.
func (n *Inode) Unlock() { n.mu.Unlock() }

// RLock acquires the inode's read lock (§4.5 step 3, read path).
func (n *Inode) RLock() { n.mu.RLock() }

// RUnlock releases the inode's read lock.
func (n *Inode) RUnlock() { n.mu.RUnlock() }

// Type returns the inode's type. Caller must hold at least a read lock.
func (n *Inode) Type() Type { return n.typ }

// Size returns the inode's logical byte size. Caller must hold at least
// a read lock.
func (n *Inode) Size() int { return n.size }

// BlockCount returns the number of data blocks currently assigned to
// this inode. Caller must hold at least a read lock.
func (n *Inode) BlockCount() int { return n.blockCount }

// ContentBlock returns the inode's first direct block. Used by
// directory logic, which only ever addresses the root directory's
// single, never-growing content block. Caller must hold at least a
// read lock, and n must have at least one block assigned.
func (n *Inode) ContentBlock() int { return n.direct[0] }

// SetSize sets the inode's logical byte size (§4.5 step 8). Caller must
// hold the write lock.
func (n *Inode) SetSize(size int) { n.size = size }

func (n *Inode) reset(typ Type) {
	n.typ = typ
	n.size = 0
	n.blockCount = 0
	n.indirectBlock = config.EmptyInumber
	for i := range n.direct {
		n.direct[i] = config.EmptyInumber
	}
}

// TruncateName applies the same truncation EncodeDirEntry uses
// internally, so callers that compare a query name against stored
// entries compare apples to apples.
func TruncateName(name string) string {
	if len(name) > config.MaxFileName-1 {
		return name[:config.MaxFileName-1]
	}
	return name
}

// EncodeDirEntry writes name (truncated to config.MaxFileName-1 bytes,
// NUL-terminated) and inumber into buf, which must be at least
// config.DirEntrySize bytes long (§4.3: "Name storage").
func EncodeDirEntry(buf []byte, name string, inumber int) {
	for i := range buf[:config.MaxFileName] {
		buf[i] = 0
	}
	n := copy(buf[:config.MaxFileName-1], name)
	buf[n] = 0
	binary.LittleEndian.PutUint32(buf[config.MaxFileName:config.DirEntrySize], uint32(int32(inumber)))
}

// DecodeDirEntry reads a name/inumber pair out of buf, which must be at
// least config.DirEntrySize bytes long. The name is the content up to
// the first NUL (§3: "NUL-padded stored names compare as their content
// up to the first NUL").
func DecodeDirEntry(buf []byte) (name string, inumber int) {
	raw := buf[:config.MaxFileName]
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	name = string(raw[:end])
	inumber = int(int32(binary.LittleEndian.Uint32(buf[config.MaxFileName:config.DirEntrySize])))
	return name, inumber
}
