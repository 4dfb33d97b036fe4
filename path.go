package tfs

import (
	"strings"

	"github.com/tfsproj/tfs/config"
)

// Lookup resolves path to an inumber (§6). path must begin with "/" and
// have length > 1 — the bare "/" is not addressable as a file (design
// note 3, preserved as intentional).
func (fs *Filesystem) Lookup(path string) (int, Status) {
	name, status := parsePath(path)
	if !status.Ok() {
		return 0, status
	}
	inum, err := fs.dir.Find(config.RootDirInum, name)
	if err != nil {
		return 0, toStatus(err)
	}
	return inum, OK
}

// parsePath implements the thin "/" + name grammar of §6. It is the
// out-of-scope path-parsing wrapper named in §1 — the single root
// directory means there is nothing to parse beyond stripping the
// leading slash and rejecting an embedded one.
func parsePath(path string) (string, Status) {
	if len(path) <= 1 || path[0] != '/' {
		return "", EINVAL
	}
	name := path[1:]
	if strings.Contains(name, "/") {
		return "", EINVAL
	}
	return name, OK
}
