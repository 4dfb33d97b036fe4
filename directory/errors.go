package directory

import "errors"

var (
	// ErrNotFound indicates no entry with the requested name exists.
	ErrNotFound = errors.New("directory: name not found")

	// ErrDirFull indicates every entry slot in the directory's block
	// is occupied.
	ErrDirFull = errors.New("directory: no free entry slot")

	// ErrEmptyName indicates an empty name was supplied to CreateIn.
	ErrEmptyName = errors.New("directory: name must not be empty")
)
