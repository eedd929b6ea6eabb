//go:build linux || darwin

package sys

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/moqsien/alewa/iface"
)

// Poll waits on fds with poll(2). An interrupted wait reports zero ready
// descriptors so the caller simply polls again.
func (that *SysApi) Poll(fds []iface.PollFd, timeout int) (int, error) {
	/* #nosec G103 */
	pfds := *(*[]unix.PollFd)(unsafe.Pointer(&fds))
	n, err := unix.Poll(pfds, timeout)
	if err == unix.EINTR {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}
