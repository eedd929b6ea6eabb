package errs

import (
	"errors"
	"fmt"
)

var (
	ErrEngineShutdown = errors.New("server is going to be shutdown")
	ErrCloseConn      = errors.New("connection is going to be closed")
)

var (
	ErrResolution     = errors.New("address resolution error")
	ErrSocketCreation = errors.New("socket creation error")
	ErrBind           = errors.New("bind error")
	ErrConnect        = errors.New("connect error")
	ErrListen         = errors.New("listen error")
	ErrAccept         = errors.New("accept a new connection error")
	ErrOption         = errors.New("socket option error")
	ErrFlag           = errors.New("descriptor flag error")
	ErrPoll           = errors.New("poll error")
)

// NoFd marks a SocketError that is not tied to a descriptor.
const NoFd = -1

// SocketError is returned by every failing socket, resolver and poller
// operation. errors.Is matches both its Kind and the wrapped capability
// error.
type SocketError struct {
	Kind error
	Op   string
	Fd   int
	Desc string
	Err  error
}

func (that *SocketError) Error() string {
	if that.Fd == NoFd {
		return fmt.Sprintf("%s: %s", that.Op, that.Desc)
	}
	return fmt.Sprintf("%s on socket %d: %s", that.Op, that.Fd, that.Desc)
}

func (that *SocketError) Unwrap() error {
	return that.Err
}

func (that *SocketError) Is(target error) bool {
	return target == that.Kind
}

func New(kind error, op string, fd int, desc string, err error) *SocketError {
	return &SocketError{Kind: kind, Op: op, Fd: fd, Desc: desc, Err: err}
}
