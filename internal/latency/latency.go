// Package latency provides the §4.2 storage-access delay knob: a
// deliberate design feature meant to surface races in callers that don't
// hold the locks they should, not a correctness requirement.
package latency

// Tick spins for count iterations, simulating a storage access. Callers
// invoke it once per bitmap scan step and once per inode/block memory
// access, per §4.2. A count of zero is a no-op, which is the default
// (Delay = 0): tests run at full speed unless a caller deliberately wants
// to widen the race window.
func Tick(count int) {
	x := 0
	for i := 0; i < count; i++ {
		x = x*31 + i
	}
	_ = x
}
