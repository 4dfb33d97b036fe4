package openfile

import "errors"

var (
	// ErrTableFull indicates every slot in the open-file table is in use.
	ErrTableFull = errors.New("openfile: no free open-file slot")

	// ErrInvalidHandle indicates the handle is out of range or names a
	// slot that is not currently open.
	ErrInvalidHandle = errors.New("openfile: invalid or already-closed handle")
)
