//go:build !unix

package seed

func lockMemory([]byte) bool { return false }

func unlockMemory([]byte) {}
