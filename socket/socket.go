/*
Package socket wraps descriptors obtained through an iface.NetworkApi.
A Socket owns its descriptor: hand it on with Move and release it with
Close.
*/
package socket

import (
	"errors"

	"github.com/moqsien/processes/logger"

	"github.com/moqsien/alewa/iface"
	"github.com/moqsien/alewa/utils/errs"
)

var errEmptyList = errors.New("no address candidates left")

type Socket struct {
	api  iface.NetworkApi
	fd   int
	addr *iface.Candidate // deep copy of the candidate it was opened or accepted from
}

// Open creates a socket for the first candidate, starting at the list's
// cursor, that the api accepts. The cursor is left on that candidate.
func Open(api iface.NetworkApi, infos *AddrInfoList) (*Socket, error) {
	var lastErr error = errEmptyList
	for it := infos.Current(); it != nil; it = infos.Advance() {
		fd, err := api.Socket(it.Family, it.SockType, it.Protocol)
		if err == nil {
			c := it.Clone()
			return &Socket{api: api, fd: fd, addr: &c}, nil
		}
		lastErr = err
	}
	return nil, errs.New(errs.ErrSocketCreation, "socket constructor", errs.NoFd, api.Describe(lastErr), lastErr)
}

func (that *Socket) Fd() int {
	return that.fd
}

func (that *Socket) GetFd() int {
	return that.fd
}

func (that *Socket) IsEmpty() bool {
	return that.fd == iface.NullFd
}

// Candidate returns the candidate the socket was created from or, for an
// accepted socket, the peer address. It is nil for an empty socket.
func (that *Socket) Candidate() *iface.Candidate {
	return that.addr
}

// Compare orders sockets by descriptor.
func (that *Socket) Compare(other *Socket) int {
	return that.fd - other.fd
}

// Move transfers ownership to a new Socket. that is left empty.
func (that *Socket) Move() *Socket {
	s := &Socket{api: that.api, fd: that.fd, addr: that.addr}
	that.fd, that.addr = iface.NullFd, nil
	return s
}

// MoveFrom releases the descriptor held by that and takes over other's.
func (that *Socket) MoveFrom(other *Socket) {
	if that == other {
		return
	}
	that.Close()
	that.api, that.fd, that.addr = other.api, other.fd, other.addr
	other.fd, other.addr = iface.NullFd, nil
}

// Close releases the descriptor once. A failing close is only logged.
func (that *Socket) Close() {
	if that.fd == iface.NullFd {
		return
	}
	if err := that.api.Close(that.fd); err != nil {
		logger.Warningf("close on socket %d: %s", that.fd, that.api.Describe(err))
	}
	that.fd, that.addr = iface.NullFd, nil
}

func (that *Socket) fail(kind error, op string, err error) error {
	return errs.New(kind, op, that.fd, that.api.Describe(err), err)
}

func (that *Socket) Bind(target iface.Candidate) error {
	if err := that.api.Bind(that.fd, target); err != nil {
		return that.fail(errs.ErrBind, "bind", err)
	}
	return nil
}

func (that *Socket) Connect(target iface.Candidate) error {
	if err := that.api.Connect(that.fd, target); err != nil {
		return that.fail(errs.ErrConnect, "connect", err)
	}
	return nil
}

// BindAny binds to the first remaining candidate of target that works.
func (that *Socket) BindAny(target *AddrInfoList) error {
	var lastErr error = errEmptyList
	for it := target.Current(); it != nil; it = target.Advance() {
		if lastErr = that.api.Bind(that.fd, *it); lastErr == nil {
			return nil
		}
	}
	return that.fail(errs.ErrBind, "bind", lastErr)
}

// ConnectAny connects to the first remaining candidate of target that works.
func (that *Socket) ConnectAny(target *AddrInfoList) error {
	var lastErr error = errEmptyList
	for it := target.Current(); it != nil; it = target.Advance() {
		if lastErr = that.api.Connect(that.fd, *it); lastErr == nil {
			return nil
		}
	}
	return that.fail(errs.ErrConnect, "connect", lastErr)
}

func (that *Socket) Listen(backlog int) error {
	if err := that.api.Listen(that.fd, backlog); err != nil {
		return that.fail(errs.ErrListen, "listen", err)
	}
	return nil
}

// Accept takes the next pending connection. Whether it blocks depends on
// the descriptor's flags.
func (that *Socket) Accept() (*Socket, error) {
	fd, peer, err := that.api.Accept(that.fd)
	if err != nil {
		return nil, that.fail(errs.ErrAccept, "accept", err)
	}
	p := peer.Clone()
	return &Socket{api: that.api, fd: fd, addr: &p}, nil
}

func (that *Socket) SetOption(level, name, value int) error {
	if err := that.api.SetSockOpt(that.fd, level, name, value); err != nil {
		return that.fail(errs.ErrOption, "set_socket_option", err)
	}
	return nil
}

func (that *Socket) SetFlag(flag int) error {
	if err := that.api.SetFlag(that.fd, flag); err != nil {
		return that.fail(errs.ErrFlag, "set_descriptor_flag", err)
	}
	return nil
}
