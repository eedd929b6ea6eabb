package socket

import (
	"github.com/moqsien/alewa/iface"
	"github.com/moqsien/alewa/sys"
)

// ListenerHints asks for wildcard stream addresses of any family.
func ListenerHints() *iface.Hints {
	return &iface.Hints{
		Family:   iface.AF_UNSPEC,
		SockType: sys.SOCK_STREAM,
		Flags:    iface.AI_PASSIVE,
	}
}

// DialHints asks for stream addresses of any family.
func DialHints() *iface.Hints {
	return &iface.Hints{
		Family:   iface.AF_UNSPEC,
		SockType: sys.SOCK_STREAM,
	}
}

// CreateListener returns a non-blocking socket with SO_REUSEADDR bound
// to the wildcard address on port. It is not listening yet.
func CreateListener(api iface.NetworkApi, port string) (sock *Socket, err error) {
	infos, err := Resolve(api, "", port, ListenerHints())
	if err != nil {
		return nil, err
	}
	defer infos.Close()

	if sock, err = Open(api, infos); err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			sock.Close()
			sock = nil
		}
	}()
	if err = sock.SetOption(sys.SOL_SOCKET, sys.SO_REUSEADDR, 1); err != nil {
		return
	}
	if err = sock.SetFlag(sys.O_NONBLOCK); err != nil {
		return
	}
	err = sock.BindAny(infos)
	return
}

// Dial returns a blocking socket connected to the first reachable
// candidate for host and port.
func Dial(api iface.NetworkApi, host, port string) (sock *Socket, err error) {
	infos, err := Resolve(api, host, port, DialHints())
	if err != nil {
		return nil, err
	}
	defer infos.Close()

	if sock, err = Open(api, infos); err != nil {
		return nil, err
	}
	if err = sock.ConnectAny(infos); err != nil {
		sock.Close()
		return nil, err
	}
	return sock, nil
}
