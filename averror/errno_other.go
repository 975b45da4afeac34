//go:build !unix

package averror

import "syscall"

// MSVC and mingw runtimes both use the POSIX numbering for these.
const errnoEAGAIN syscall.Errno = 11

var errnoNames = map[syscall.Errno]string{
	1:  "EPERM",
	2:  "ENOENT",
	4:  "EINTR",
	5:  "EIO",
	11: "EAGAIN",
	12: "ENOMEM",
	13: "EACCES",
	22: "EINVAL",
	28: "ENOSPC",
	32: "EPIPE",
	38: "ENOSYS",
}

func errnoName(errno syscall.Errno) (string, bool) {
	name, ok := errnoNames[errno]
	return name, ok
}

// ParseErrno resolves a symbolic errno name such as "EAGAIN".
func ParseErrno(name string) (syscall.Errno, bool) {
	if name == "" {
		return 0, false
	}
	for errno, n := range errnoNames {
		if n == name {
			return errno, true
		}
	}
	return 0, false
}
