package tfs

import "github.com/tfsproj/tfs/config"

// Public re-exports of the named constants (§6). Kept as plain aliases so
// callers of this package never need to import the config package
// directly, mirroring how fuse/types.go exposes its constants straight
// off the root package.
const (
	BlockSize       = config.BlockSize
	DataBlocks      = config.DataBlocks
	InodeTableSize  = config.InodeTableSize
	InodeDirectRefs = config.InodeDirectRefs
	MaxFileName     = config.MaxFileName
	MaxOpenFiles    = config.MaxOpenFiles
	RootDirInum     = config.RootDirInum
	Delay           = config.Delay

	MaxDirEntries   = config.MaxDirEntries
	MaxIndirectRefs = config.MaxIndirectRefs
	MaxFileSize     = config.MaxFileSize
)
