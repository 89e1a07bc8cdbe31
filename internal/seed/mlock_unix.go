//go:build unix

package seed

import "golang.org/x/sys/unix"

// lockMemory keeps the seed pages out of swap. Failure (RLIMIT_MEMLOCK,
// sandboxed hosts) is tolerated: the seed is still zeroed on redaction.
func lockMemory(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	return unix.Mlock(b) == nil
}

func unlockMemory(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = unix.Munlock(b)
}
