// Command tfsdemo is a tiny, non-interactive program that exercises the
// tfs library end to end, grounded on example/memfs in the teacher
// library (a small main.go wiring the in-memory filesystem library
// without a CLI framework). The spec scopes a real CLI out of the core
// (§1), so this stays a fixed smoke-test program rather than a flag or
// config surface.
package main

import (
	"fmt"
	"log"

	"github.com/tfsproj/tfs"
)

func main() {
	fs, status := tfs.Init()
	if !status.Ok() {
		log.Fatalf("tfs.Init: %v", status)
	}

	h, status := fs.Open("/hello", tfs.CREATE)
	if !status.Ok() {
		log.Fatalf("Open: %v", status)
	}

	if n, status := fs.Write(h, []byte("hello, tfs")); !status.Ok() {
		log.Fatalf("Write: %v", status)
	} else {
		fmt.Printf("wrote %d bytes\n", n)
	}

	if status := fs.Close(h); !status.Ok() {
		log.Fatalf("Close: %v", status)
	}

	h, status = fs.Open("/hello", 0)
	if !status.Ok() {
		log.Fatalf("Open (reread): %v", status)
	}
	buf := make([]byte, 64)
	n, status := fs.Read(h, buf)
	if !status.Ok() {
		log.Fatalf("Read: %v", status)
	}
	fmt.Printf("read back: %q\n", buf[:n])

	if status := fs.Close(h); !status.Ok() {
		log.Fatalf("Close: %v", status)
	}
	if status := fs.Destroy(); !status.Ok() {
		log.Fatalf("Destroy: %v", status)
	}
}
