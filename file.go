package tfs

import (
	"github.com/tfsproj/tfs/config"
	"github.com/tfsproj/tfs/inode"
)

// Flags controls Open's behavior (§6).
type Flags uint8

const (
	// CREATE creates a regular file with the given name if it doesn't
	// already exist in the root directory; if it exists, the existing
	// inode is used.
	CREATE Flags = 1 << iota

	// TRUNC resets the located inode's content to empty after lookup
	// or creation.
	TRUNC

	// APPEND makes the handle ignore its stored offset at the start
	// of every read or write, substituting the inode's current size.
	APPEND
)

// Open resolves path (creating it first if flags has CREATE), applies
// TRUNC if requested, and returns a file handle (§6).
func (fs *Filesystem) Open(path string, flags Flags) (int, Status) {
	name, status := parsePath(path)
	if !status.Ok() {
		return 0, status
	}

	var inum int
	if flags&CREATE != 0 {
		n, err := fs.dir.CreateIn(config.RootDirInum, inode.File, name)
		if err != nil {
			return 0, toStatus(err)
		}
		inum = n
	} else {
		n, err := fs.dir.Find(config.RootDirInum, name)
		if err != nil {
			return 0, toStatus(err)
		}
		inum = n
	}

	if flags&TRUNC != 0 {
		if err := fs.inodes.Clear(inum); err != nil {
			return 0, toStatus(err)
		}
	}

	handle, err := fs.openfiles.OpenEntry(inum, flags&APPEND != 0)
	if err != nil {
		return 0, toStatus(err)
	}
	return handle, OK
}

// Close releases handle (§6).
func (fs *Filesystem) Close(handle int) Status {
	if err := fs.openfiles.CloseEntry(handle); err != nil {
		return toStatus(err)
	}
	return OK
}

// Write copies data into handle's file starting at its cursor (or at
// end-of-file if opened with APPEND), clamped to config.MaxFileSize, and
// advances the cursor by the amount written (§4.5, §6).
func (fs *Filesystem) Write(handle int, data []byte) (int, Status) {
	return fs.transfer(handle, data, true)
}

// Read copies up to len(buf) bytes from handle's file starting at its
// cursor (or at end-of-file if opened with APPEND) into buf, and
// advances the cursor by the amount read (§4.5, §6).
func (fs *Filesystem) Read(handle int, buf []byte) (int, Status) {
	return fs.transfer(handle, buf, false)
}

// transfer implements the §4.5 read/write algorithm. Both the entry
// mutex and the inode lock are acquired once, at the top, and released
// via defer — every exit path (including early error returns) releases
// both, which is the fix for design note 2 (the source's read operation
// has an early-return path that skips an explicit unlock).
func (fs *Filesystem) transfer(handle int, buf []byte, write bool) (int, Status) {
	entry, err := fs.openfiles.At(handle)
	if err != nil {
		return 0, toStatus(err)
	}

	entry.Lock()
	defer entry.Unlock()

	n, err := fs.inodes.At(entry.Inumber())
	if err != nil {
		return 0, toStatus(err)
	}

	if write {
		n.Lock()
		defer n.Unlock()
	} else {
		n.RLock()
		defer n.RUnlock()
	}

	// Append is resolved at write-start time, after acquiring the
	// inode's lock, so concurrent appenders on different handles
	// observe a strictly increasing size and never overlap (§5).
	offset := entry.Offset()
	if entry.Append() {
		offset = n.Size()
	}
	if offset > n.Size() {
		return 0, ESTALE
	}

	var count int
	if write {
		count = clamp(len(buf), config.MaxFileSize-offset)
	} else {
		count = clamp(len(buf), n.Size()-offset)
	}

	transferred := 0
	for transferred < count {
		blockIndex := offset / config.BlockSize
		within := offset % config.BlockSize

		var physical int
		if write && blockIndex == n.BlockCount() {
			physical, err = fs.inodes.Extend(entry.Inumber())
		} else {
			physical, err = fs.inodes.BlockAt(entry.Inumber(), blockIndex)
		}
		if err != nil {
			entry.SetOffset(offset)
			if write && offset > n.Size() {
				n.SetSize(offset)
			}
			return transferred, toStatus(err)
		}

		blockBuf, _ := fs.blocks.Address(physical)
		chunk := clamp(config.BlockSize-within, count-transferred)
		if write {
			copy(blockBuf[within:within+chunk], buf[transferred:transferred+chunk])
		} else {
			copy(buf[transferred:transferred+chunk], blockBuf[within:within+chunk])
		}

		offset += chunk
		transferred += chunk
	}

	entry.SetOffset(offset)
	if write && offset > n.Size() {
		n.SetSize(offset)
	}
	return transferred, OK
}

func clamp(requested, limit int) int {
	if requested > limit {
		return limit
	}
	return requested
}
