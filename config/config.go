// Package config holds the named constants of §6 and their derived
// values, the way the teacher keeps protocol constants as a flat const
// block in fuse/types.go (FUSE_KERNEL_VERSION, FATTR_MODE, ...) rather
// than behind a config-file loader. Configuration literals are explicitly
// out of scope per §1; they become named constants only.
package config

const (
	// BlockSize is the size in bytes of a single data block.
	BlockSize = 1024

	// DataBlocks is the number of blocks in the block store's arena.
	DataBlocks = 1024

	// InodeTableSize is the number of inode slots.
	InodeTableSize = 64

	// InodeDirectRefs is the number of direct block references an
	// inode carries inline.
	InodeDirectRefs = 10

	// MaxFileName is the maximum stored length of a name, including
	// its terminating NUL (§3: "name ≤ MAX_FILE_NAME−1 bytes,
	// NUL-terminated").
	MaxFileName = 44

	// MaxOpenFiles is the size of the open-file table.
	MaxOpenFiles = 32

	// RootDirInum is the inumber of the (sole) root directory.
	RootDirInum = 0

	// EmptyInumber is the sentinel stored in an empty directory-entry
	// slot or an unset indirect-block reference.
	EmptyInumber = -1

	// Delay is the latency-emulation loop count (§4.2); zero disables
	// it. A reimplementation may ignore its exact pacing (design note 5).
	Delay = 0

	// DirEntrySize is sizeof(dir_entry): a fixed-width NUL-padded name
	// plus a 4-byte inumber.
	DirEntrySize = MaxFileName + 4

	// BlockIndexSize is sizeof(block_index): a 4-byte block reference,
	// as stored inside an indirect block.
	BlockIndexSize = 4
)

// Derived constants (§6).
const (
	MaxDirEntries   = BlockSize / DirEntrySize
	MaxIndirectRefs = BlockSize / BlockIndexSize
	MaxFileSize     = BlockSize * (InodeDirectRefs + MaxIndirectRefs)
)
