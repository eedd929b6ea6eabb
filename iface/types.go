package iface

import (
	"errors"
	"fmt"
	"time"
)

// ErrWouldBlock is matched by capability errors for operations that
// cannot complete without blocking.
var ErrWouldBlock = errors.New("operation would block")

type PollErrorPolicy int

func (that PollErrorPolicy) String() string {
	switch that {
	case PollErrAbort:
		return "abort"
	case PollErrIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("PollErrorPolicy(%d)", int(that))
	}
}

// Hints narrows address resolution, like the hints argument of getaddrinfo.
type Hints struct {
	Family   int
	SockType int
	Protocol int
	Flags    int
}

// Candidate is one resolved endpoint. Addr is opaque to everything but
// the NetworkApi that produced it.
type Candidate struct {
	Family   int
	SockType int
	Protocol int
	Addr     []byte
}

func (that Candidate) AddrLen() int {
	return len(that.Addr)
}

// Clone returns a deep copy that shares no memory with that.
func (that Candidate) Clone() Candidate {
	c := that
	if that.Addr != nil {
		c.Addr = make([]byte, len(that.Addr))
		copy(c.Addr, that.Addr)
	}
	return c
}

func (that Candidate) String() string {
	return fmt.Sprintf("family=%d type=%d proto=%d addrlen=%d",
		that.Family, that.SockType, that.Protocol, that.AddrLen())
}

// PollFd has the memory layout of struct pollfd.
type PollFd struct {
	Fd      int32
	Events  int16
	Revents int16
}

type Options struct {
	PollTimeout   time.Duration   // 0 uses DefaultPollTimeout, negative blocks until a descriptor is ready
	BusyPoll      bool            // poll with a zero timeout, overrides PollTimeout
	OnPollError   PollErrorPolicy // what the loop does when poll fails
	ConnKeepAlive time.Duration   // 0 leaves accepted sockets untouched
	ClientEvents  int16           // interest registered for accepted sockets
	LockOSThread  bool
}
