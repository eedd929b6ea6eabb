//go:build linux || darwin

/*
Package sys binds iface.NetworkApi to the operating system through
golang.org/x/sys/unix. Address resolution goes through the Go resolver,
which plays the role of getaddrinfo.
*/
package sys

import (
	"errors"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github.com/moqsien/alewa/iface"
)

const DefaultResolveTimeout = 5 * time.Second

type SysApi struct {
	Resolver       *net.Resolver
	ResolveTimeout time.Duration
}

var _ iface.NetworkApi = (*SysApi)(nil)

func New() *SysApi {
	return &SysApi{
		Resolver:       net.DefaultResolver,
		ResolveTimeout: DefaultResolveTimeout,
	}
}

func CloseFd(fd int) error {
	return unix.Close(fd)
}

type wouldBlockError struct {
	errno unix.Errno
}

func (that *wouldBlockError) Error() string        { return that.errno.Error() }
func (that *wouldBlockError) Unwrap() error        { return that.errno }
func (that *wouldBlockError) Is(target error) bool { return target == iface.ErrWouldBlock }

func wrapErrno(err error) error {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return err
	}
	if errno == unix.EAGAIN || errno == unix.EINPROGRESS {
		return &wouldBlockError{errno: errno}
	}
	return err
}

// wrapAcceptErrno also reports a connection reset before it was taken off
// the queue, and an interrupted accept, as would-block: the listener stays
// usable and the next readiness retries.
func wrapAcceptErrno(err error) error {
	var errno unix.Errno
	if errors.As(err, &errno) && (errno == unix.ECONNABORTED || errno == unix.EINTR) {
		return &wouldBlockError{errno: errno}
	}
	return wrapErrno(err)
}

// Release is a no-op: resolved candidates are ordinary Go memory.
func (that *SysApi) Release(_ []iface.Candidate) {}

func (that *SysApi) Socket(family, sockType, protocol int) (int, error) {
	fd, err := unix.Socket(family, sockType, protocol)
	if err != nil {
		return iface.NullFd, err
	}
	unix.CloseOnExec(fd)
	return fd, nil
}

func (that *SysApi) Close(fd int) error {
	return CloseFd(fd)
}

func (that *SysApi) Bind(fd int, addr iface.Candidate) error {
	sa, err := ToSockaddr(addr)
	if err != nil {
		return err
	}
	return unix.Bind(fd, sa)
}

func (that *SysApi) Connect(fd int, addr iface.Candidate) error {
	sa, err := ToSockaddr(addr)
	if err != nil {
		return err
	}
	return wrapErrno(unix.Connect(fd, sa))
}

func (that *SysApi) Listen(fd, backlog int) error {
	return unix.Listen(fd, backlog)
}

func (that *SysApi) Accept(fd int) (int, iface.Candidate, error) {
	nfd, sa, err := accept(fd)
	if err != nil {
		return iface.NullFd, iface.Candidate{}, wrapAcceptErrno(err)
	}
	peer, err := FromSockaddr(sa)
	if err != nil {
		// the descriptor is valid even if its peer address is not
		// representable; report an empty candidate.
		peer = iface.Candidate{}
	}
	peer.SockType = SOCK_STREAM
	return nfd, peer, nil
}

func (that *SysApi) SetSockOpt(fd, level, name, value int) error {
	return unix.SetsockoptInt(fd, level, name, value)
}

func (that *SysApi) SetFlag(fd, flag int) error {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return err
	}
	_, err = unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags|flag)
	return err
}

func (that *SysApi) Describe(err error) string {
	if err == nil {
		return ""
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Err
	}
	var addrErr *net.AddrError
	if errors.As(err, &addrErr) {
		return addrErr.Err
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno.Error()
	}
	return err.Error()
}

func Read(fd int, p []byte) (n int, err error) {
	n, err = unix.Read(fd, p)
	return n, wrapErrno(err)
}
