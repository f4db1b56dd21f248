//go:build !cgo || !(linux || darwin || freebsd || openbsd || netbsd)

package proc

// DetectHZ returns the conventional USER_HZ when sysconf is unavailable.
func DetectHZ() int {
	return defaultHZ
}
