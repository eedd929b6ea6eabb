//go:build linux || darwin

package sys

import (
	"context"
	"net"

	"github.com/moqsien/alewa/iface"
)

var (
	passiveIPs  = []net.IP{net.IPv4zero, net.IPv6unspecified}
	loopbackIPs = []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback}
)

func (that *SysApi) resolver() *net.Resolver {
	if that.Resolver == nil {
		return net.DefaultResolver
	}
	return that.Resolver
}

// Resolve follows getaddrinfo: an empty node yields the wildcard
// addresses with AI_PASSIVE and the loopback addresses otherwise, inet4
// ahead of inet6.
func (that *SysApi) Resolve(node, service string, hints *iface.Hints) ([]iface.Candidate, error) {
	if hints == nil {
		hints = &iface.Hints{}
	}
	timeout := that.ResolveTimeout
	if timeout <= 0 {
		timeout = DefaultResolveTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sockType, network, protocol := hints.SockType, "tcp", IPPROTO_TCP
	if sockType == 0 {
		sockType = SOCK_STREAM
	}
	if sockType == SOCK_DGRAM {
		network, protocol = "udp", IPPROTO_UDP
	}
	if hints.Protocol != 0 {
		protocol = hints.Protocol
	}

	port := 0
	if service != "" {
		p, err := that.resolver().LookupPort(ctx, network, service)
		if err != nil {
			return nil, err
		}
		port = p
	}

	var ips []net.IPAddr
	switch {
	case node == "" && hints.Flags&iface.AI_PASSIVE != 0:
		for _, ip := range passiveIPs {
			ips = append(ips, net.IPAddr{IP: ip})
		}
	case node == "":
		for _, ip := range loopbackIPs {
			ips = append(ips, net.IPAddr{IP: ip})
		}
	case net.ParseIP(node) != nil:
		ips = append(ips, net.IPAddr{IP: net.ParseIP(node)})
	default:
		found, err := that.resolver().LookupIPAddr(ctx, node)
		if err != nil {
			return nil, err
		}
		ips = found
	}

	var v4, v6 []iface.Candidate
	for _, ip := range ips {
		if ip4 := ip.IP.To4(); ip4 != nil {
			if hints.Family == iface.AF_UNSPEC || hints.Family == AF_INET {
				v4 = append(v4, iface.Candidate{
					Family:   AF_INET,
					SockType: sockType,
					Protocol: protocol,
					Addr:     EncodeInet4(ip4, port),
				})
			}
			continue
		}
		if hints.Family == iface.AF_UNSPEC || hints.Family == AF_INET6 {
			var zone uint32
			if ip.Zone != "" {
				if ifi, err := net.InterfaceByName(ip.Zone); err == nil {
					zone = uint32(ifi.Index)
				}
			}
			v6 = append(v6, iface.Candidate{
				Family:   AF_INET6,
				SockType: sockType,
				Protocol: protocol,
				Addr:     EncodeInet6(ip.IP, port, zone),
			})
		}
	}
	list := append(v4, v6...)
	if len(list) == 0 {
		return nil, &net.AddrError{Err: "no address associated with hostname", Addr: node}
	}
	return list, nil
}
