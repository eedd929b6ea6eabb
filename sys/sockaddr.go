//go:build linux || darwin

package sys

import (
	"encoding/binary"
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	"github.com/moqsien/alewa/iface"
)

// Address payloads are laid out as a big-endian port followed by the raw
// IP; inet6 payloads carry a trailing big-endian scope id.
const (
	inet4AddrLen = 2 + net.IPv4len
	inet6AddrLen = 2 + net.IPv6len + 4
)

func EncodeInet4(ip net.IP, port int) []byte {
	b := make([]byte, inet4AddrLen)
	binary.BigEndian.PutUint16(b, uint16(port))
	copy(b[2:], ip.To4())
	return b
}

func EncodeInet6(ip net.IP, port int, zone uint32) []byte {
	b := make([]byte, inet6AddrLen)
	binary.BigEndian.PutUint16(b, uint16(port))
	copy(b[2:], ip.To16())
	binary.BigEndian.PutUint32(b[2+net.IPv6len:], zone)
	return b
}

func ToSockaddr(c iface.Candidate) (unix.Sockaddr, error) {
	switch c.Family {
	case AF_INET:
		if c.AddrLen() != inet4AddrLen {
			return nil, fmt.Errorf("inet4 address has length %d", c.AddrLen())
		}
		sa := &unix.SockaddrInet4{Port: int(binary.BigEndian.Uint16(c.Addr))}
		copy(sa.Addr[:], c.Addr[2:])
		return sa, nil
	case AF_INET6:
		if c.AddrLen() != inet6AddrLen {
			return nil, fmt.Errorf("inet6 address has length %d", c.AddrLen())
		}
		sa := &unix.SockaddrInet6{
			Port:   int(binary.BigEndian.Uint16(c.Addr)),
			ZoneId: binary.BigEndian.Uint32(c.Addr[2+net.IPv6len:]),
		}
		copy(sa.Addr[:], c.Addr[2:2+net.IPv6len])
		return sa, nil
	case AF_UNIX:
		return &unix.SockaddrUnix{Name: string(c.Addr)}, nil
	default:
		return nil, unix.EAFNOSUPPORT
	}
}

func FromSockaddr(sa unix.Sockaddr) (c iface.Candidate, err error) {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		c.Family, c.Protocol = AF_INET, IPPROTO_TCP
		c.Addr = EncodeInet4(sa.Addr[:], sa.Port)
	case *unix.SockaddrInet6:
		c.Family, c.Protocol = AF_INET6, IPPROTO_TCP
		c.Addr = EncodeInet6(sa.Addr[:], sa.Port, sa.ZoneId)
	case *unix.SockaddrUnix:
		c.Family = AF_UNIX
		c.Addr = []byte(sa.Name)
	default:
		err = unix.EAFNOSUPPORT
	}
	return
}

// CandidateAddr renders a candidate produced by SysApi as a net.Addr, or
// nil when the payload is not an inet address.
func CandidateAddr(c iface.Candidate) net.Addr {
	sa, err := ToSockaddr(c)
	if err != nil {
		return nil
	}
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		return &net.TCPAddr{IP: net.IP(sa.Addr[:]).To16(), Port: sa.Port}
	case *unix.SockaddrInet6:
		addr := &net.TCPAddr{IP: net.IP(sa.Addr[:]), Port: sa.Port}
		if sa.ZoneId != 0 {
			if ifi, err := net.InterfaceByIndex(int(sa.ZoneId)); err == nil {
				addr.Zone = ifi.Name
			}
		}
		return addr
	case *unix.SockaddrUnix:
		return &net.UnixAddr{Name: sa.Name, Net: "unix"}
	}
	return nil
}
