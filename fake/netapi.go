// Package fake provides a deterministic iface.NetworkApi for tests. Every
// call succeeds or fails according to RetCode unless a XxxFunc hook is set.
package fake

import (
	"errors"
	"fmt"

	"github.com/moqsien/alewa/iface"
)

const (
	Error   = iface.NullFd
	Success = 0
	Errno   = -5
	ErrStr  = "Error"
)

var ErrFake = errors.New("fake network error")

// NetApi records every call it receives. It is not safe for concurrent use.
type NetApi struct {
	RetCode int
	Errno   int

	Candidates []iface.Candidate
	Peer       iface.Candidate
	Ready      map[int]int16

	SocketFunc  func(family, sockType, protocol int) (int, error)
	BindFunc    func(fd int, addr iface.Candidate) error
	ConnectFunc func(fd int, addr iface.Candidate) error
	AcceptFunc  func(fd int) (int, iface.Candidate, error)
	PollFunc    func(fds []iface.PollFd, timeout int) (int, error)
	CloseErr    error

	Calls     []string
	Hints     *iface.Hints
	Node      string
	Service   string
	Freed     int
	Closed    []int
	Binds     []iface.Candidate
	Connects  []iface.Candidate
	Backlog   int
	Options   []Option
	Flags     []int
	PollCalls int
	Timeouts  []int
}

type Option struct {
	Fd, Level, Name, Value int
}

var _ iface.NetworkApi = (*NetApi)(nil)

// DefaultCandidate is the single candidate resolved by a fresh NetApi.
func DefaultCandidate() iface.Candidate {
	return iface.Candidate{Family: 2, SockType: 1, Protocol: 6, Addr: []byte{0x0d, 0xa2, 0, 0, 0, 0}}
}

func New() *NetApi {
	return &NetApi{
		RetCode:    Success,
		Errno:      Errno,
		Candidates: []iface.Candidate{DefaultCandidate()},
		Peer:       iface.Candidate{Family: 0xB00, Addr: []byte{0, 69, 2}},
		Ready:      map[int]int16{},
	}
}

func (that *NetApi) failed() bool {
	return that.RetCode == Error
}

func (that *NetApi) record(call string) {
	that.Calls = append(that.Calls, call)
}

// IsClosed reports how many times fd has been closed.
func (that *NetApi) IsClosed(fd int) int {
	n := 0
	for _, c := range that.Closed {
		if c == fd {
			n++
		}
	}
	return n
}

func (that *NetApi) Resolve(node, service string, hints *iface.Hints) ([]iface.Candidate, error) {
	that.record("resolve")
	that.Node, that.Service, that.Hints = node, service, hints
	if that.failed() {
		return nil, ErrFake
	}
	return that.Candidates, nil
}

func (that *NetApi) Release(_ []iface.Candidate) {
	that.record("release")
	that.Freed++
}

func (that *NetApi) Socket(family, sockType, protocol int) (int, error) {
	that.record("socket")
	if that.SocketFunc != nil {
		return that.SocketFunc(family, sockType, protocol)
	}
	if that.failed() {
		return Error, ErrFake
	}
	return that.RetCode, nil
}

func (that *NetApi) Close(fd int) error {
	that.record("close")
	that.Closed = append(that.Closed, fd)
	return that.CloseErr
}

func (that *NetApi) Bind(fd int, addr iface.Candidate) error {
	that.record("bind")
	that.Binds = append(that.Binds, addr)
	if that.BindFunc != nil {
		return that.BindFunc(fd, addr)
	}
	if that.failed() {
		return ErrFake
	}
	return nil
}

func (that *NetApi) Connect(fd int, addr iface.Candidate) error {
	that.record("connect")
	that.Connects = append(that.Connects, addr)
	if that.ConnectFunc != nil {
		return that.ConnectFunc(fd, addr)
	}
	if that.failed() {
		return ErrFake
	}
	return nil
}

func (that *NetApi) Listen(_, backlog int) error {
	that.record("listen")
	that.Backlog = backlog
	if that.failed() {
		return ErrFake
	}
	return nil
}

func (that *NetApi) Accept(fd int) (int, iface.Candidate, error) {
	that.record("accept")
	if that.AcceptFunc != nil {
		return that.AcceptFunc(fd)
	}
	if that.failed() {
		return Error, iface.Candidate{}, ErrFake
	}
	return that.RetCode, that.Peer.Clone(), nil
}

func (that *NetApi) SetSockOpt(fd, level, name, value int) error {
	that.record("setsockopt")
	that.Options = append(that.Options, Option{Fd: fd, Level: level, Name: name, Value: value})
	if that.failed() {
		return ErrFake
	}
	return nil
}

func (that *NetApi) SetFlag(_, flag int) error {
	that.record("fcntl")
	that.Flags = append(that.Flags, flag)
	if that.failed() {
		return ErrFake
	}
	return nil
}

// Poll reports the events in Ready for each registered descriptor.
func (that *NetApi) Poll(fds []iface.PollFd, timeout int) (int, error) {
	that.record("poll")
	that.PollCalls++
	that.Timeouts = append(that.Timeouts, timeout)
	if that.PollFunc != nil {
		return that.PollFunc(fds, timeout)
	}
	if that.failed() {
		return Error, ErrFake
	}
	n := 0
	for i := range fds {
		fds[i].Revents = that.Ready[int(fds[i].Fd)] & (fds[i].Events | iface.PollClosed)
		if fds[i].Revents != 0 {
			n++
		}
	}
	return n, nil
}

// Describe renders ErrFake as "Error: <Errno>" and any other error verbatim.
func (that *NetApi) Describe(err error) string {
	if errors.Is(err, ErrFake) {
		return fmt.Sprintf("%s: %d", ErrStr, that.Errno)
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
