package tfs

import (
	"errors"

	"github.com/tfsproj/tfs/directory"
	"github.com/tfsproj/tfs/inode"
	"github.com/tfsproj/tfs/openfile"
)

// toStatus collapses an internal package error into the uniform Status
// surface of §7, the same way fuse.ToStatus collapses a Go error into a
// fuse.Status at the teacher library's public boundary.
func toStatus(err error) Status {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, inode.ErrNoFreeSlot),
		errors.Is(err, inode.ErrNoFreeBlock),
		errors.Is(err, inode.ErrIndirectFull),
		errors.Is(err, directory.ErrDirFull):
		return ENOSPC
	case errors.Is(err, openfile.ErrTableFull):
		return EMFILE
	case errors.Is(err, directory.ErrNotFound):
		return ENOENT
	case errors.Is(err, inode.ErrInvalidInum),
		errors.Is(err, inode.ErrBlockIndexOOB),
		errors.Is(err, directory.ErrEmptyName),
		errors.Is(err, openfile.ErrInvalidHandle):
		return EINVAL
	case errors.Is(err, inode.ErrNotDirectory):
		return ENOTDIR
	}
	return EIO
}
