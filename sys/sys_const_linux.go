//go:build linux

package sys

import "golang.org/x/sys/unix"

const (
	TCP_KEEPINTVL = unix.TCP_KEEPINTVL
	TCP_KEEPIDLE  = unix.TCP_KEEPIDLE
	SOL_SOCKET    = unix.SOL_SOCKET
	IPPROTO_TCP   = unix.IPPROTO_TCP
	IPPROTO_UDP   = unix.IPPROTO_UDP
	SO_KEEPALIVE  = unix.SO_KEEPALIVE
	SO_REUSEADDR  = unix.SO_REUSEADDR
	O_NONBLOCK    = unix.O_NONBLOCK
	AF_INET       = unix.AF_INET
	AF_INET6      = unix.AF_INET6
	AF_UNIX       = unix.AF_UNIX
	SOCK_STREAM   = unix.SOCK_STREAM
	SOCK_DGRAM    = unix.SOCK_DGRAM
)
