//go:build unix

package averror

import (
	"syscall"

	"golang.org/x/sys/unix"
)

const errnoEAGAIN = unix.EAGAIN

func errnoName(errno syscall.Errno) (string, bool) {
	name := unix.ErrnoName(errno)
	return name, name != ""
}

// ParseErrno resolves a symbolic errno name such as "EAGAIN".
func ParseErrno(name string) (syscall.Errno, bool) {
	if name == "" {
		return 0, false
	}
	for errno := syscall.Errno(1); errno < 256; errno++ {
		if unix.ErrnoName(errno) == name {
			return errno, true
		}
	}
	return 0, false
}
