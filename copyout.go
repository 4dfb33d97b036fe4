package tfs

import "os"

// CopyOut reads the whole content of the TFS file named by path and
// writes it to hostPath on the real filesystem. This is the "copy TFS
// file to a host-OS path" convenience routine named in §1 as an
// external collaborator of the state core — it is not part of the core
// and is kept as thin as the spec allows: open, read to EOF, write out,
// close.
func CopyOut(fs *Filesystem, path, hostPath string) Status {
	handle, status := fs.Open(path, 0)
	if !status.Ok() {
		return status
	}
	defer fs.Close(handle)

	var content []byte
	buf := make([]byte, BlockSize)
	for {
		n, status := fs.Read(handle, buf)
		if !status.Ok() {
			return status
		}
		if n == 0 {
			break
		}
		content = append(content, buf[:n]...)
	}

	if err := os.WriteFile(hostPath, content, 0o644); err != nil {
		return EIO
	}
	return OK
}
