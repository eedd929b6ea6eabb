//go:build darwin

package sys

import "golang.org/x/sys/unix"

// darwin has no accept4.
func accept(fd int) (int, unix.Sockaddr, error) {
	nfd, sa, err := unix.Accept(fd)
	if err != nil {
		return nfd, sa, err
	}
	unix.CloseOnExec(nfd)
	return nfd, sa, nil
}
