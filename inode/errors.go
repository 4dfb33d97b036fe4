package inode

import "errors"

// Sentinel errors returned by Table operations. The root tfs package
// converts these to Status values the way fuse.ToStatus converts a Go
// error into a fuse.Status in the teacher library.
var (
	ErrNoFreeSlot    = errors.New("inode: no free inode slot")
	ErrNoFreeBlock   = errors.New("inode: no free data block")
	ErrInvalidInum   = errors.New("inode: inumber out of range or not taken")
	ErrNotDirectory  = errors.New("inode: inode is not a directory")
	ErrIndirectFull  = errors.New("inode: block_count has reached its maximum")
	ErrBlockIndexOOB = errors.New("inode: logical block index out of range")
)
