// Package tfs implements an in-memory, thread-safe, single-directory
// file system mimicking a classic Unix inode design at miniature scale
// (spec §1-§2). The state core — block store, inode table, directory
// logic over the root, and open-file table — lives in the block,
// inode, directory, and openfile subpackages; this package wires them
// into the public surface of §6.
package tfs

import (
	"github.com/tfsproj/tfs/block"
	"github.com/tfsproj/tfs/config"
	"github.com/tfsproj/tfs/directory"
	"github.com/tfsproj/tfs/inode"
	"github.com/tfsproj/tfs/openfile"
)

// Filesystem is the process-wide singleton created by Init and torn
// down by Destroy or DestroyAfterAllClosed (§3: "Ownership"). The block
// store, inode table, and open-file table it holds are safe for
// concurrent use by any number of goroutines.
type Filesystem struct {
	blocks    *block.Store
	inodes    *inode.Table
	dir       *directory.Directory
	openfiles *openfile.Table
}

// Init marks every inode, block, and open-file slot free, creates the
// root directory inode, and fails unless the root's inumber is
// config.RootDirInum (§4.6).
func Init() (*Filesystem, Status) {
	blocks := block.New(config.DataBlocks, config.BlockSize, config.Delay)
	inodes := inode.New(blocks, config.Delay)
	dir := directory.New(inodes, blocks)
	openfiles := openfile.New()

	root, err := inodes.Create(inode.Directory)
	if err != nil {
		return nil, toStatus(err)
	}
	if root != config.RootDirInum {
		return nil, EIO
	}

	return &Filesystem{
		blocks:    blocks,
		inodes:    inodes,
		dir:       dir,
		openfiles: openfiles,
	}, OK
}

// Destroy ends the filesystem without waiting for open handles (§4.6);
// it releases nothing and always returns OK. In Go there is nothing to explicitly
// release — the garbage collector reclaims the arena once the
// Filesystem value is unreachable — so Destroy exists as the named
// operation the spec requires, not as a resource-release step.
func (fs *Filesystem) Destroy() Status {
	return OK
}

// DestroyAfterAllClosed blocks until every open handle has closed, then
// performs Destroy (§4.6).
func (fs *Filesystem) DestroyAfterAllClosed() Status {
	fs.openfiles.WaitUntilAllClosed()
	return fs.Destroy()
}
