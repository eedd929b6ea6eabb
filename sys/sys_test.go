//go:build linux

package sys_test

import (
	"errors"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/moqsien/alewa/iface"
	"github.com/moqsien/alewa/socket"
	"github.com/moqsien/alewa/sys"
	"github.com/moqsien/alewa/utils/errs"
)

func TestResolvePassiveWildcard(t *testing.T) {
	api := sys.New()
	list, err := api.Resolve("", "3490", socket.ListenerHints())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, sys.AF_INET, list[0].Family)
	assert.Equal(t, sys.AF_INET6, list[1].Family)
	assert.Equal(t, &net.TCPAddr{IP: net.IPv4zero.To16(), Port: 3490}, sys.CandidateAddr(list[0]))

	list, err = api.Resolve("", "3490", &iface.Hints{Family: sys.AF_INET6, Flags: iface.AI_PASSIVE})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sys.AF_INET6, list[0].Family)
}

func TestResolveUnknownService(t *testing.T) {
	api := sys.New()
	_, err := socket.Resolve(api, "127.0.0.1", "no-such-service-here", socket.DialHints())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrResolution))
}

func TestSockaddrConversion(t *testing.T) {
	sa := &unix.SockaddrInet6{Port: 8080, ZoneId: 2}
	copy(sa.Addr[:], net.ParseIP("fe80::1"))
	c, err := sys.FromSockaddr(sa)
	require.NoError(t, err)
	assert.Equal(t, 22, c.AddrLen())
	back, err := sys.ToSockaddr(c)
	require.NoError(t, err)
	assert.Equal(t, sa, back)

	_, err = sys.ToSockaddr(iface.Candidate{Family: sys.AF_INET, Addr: []byte{1, 2}})
	assert.Error(t, err)
}

func TestLoopbackAccept(t *testing.T) {
	api := sys.New()
	infos, err := socket.Resolve(api, "127.0.0.1", "0", socket.DialHints())
	require.NoError(t, err)
	defer infos.Close()

	ln, err := socket.Open(api, infos)
	require.NoError(t, err)
	defer ln.Close()
	require.NoError(t, ln.SetOption(sys.SOL_SOCKET, sys.SO_REUSEADDR, 1))
	require.NoError(t, ln.SetFlag(sys.O_NONBLOCK))
	require.NoError(t, ln.BindAny(infos))
	require.NoError(t, ln.Listen(4))

	_, err = ln.Accept()
	require.Error(t, err)
	assert.True(t, errors.Is(err, iface.ErrWouldBlock))

	sa, err := unix.Getsockname(ln.Fd())
	require.NoError(t, err)
	port := sa.(*unix.SockaddrInet4).Port

	conn, err := socket.Dial(api, "127.0.0.1", strconv.Itoa(port))
	require.NoError(t, err)
	defer conn.Close()

	fds := []iface.PollFd{{Fd: int32(ln.Fd()), Events: iface.PollIn}}
	n, err := api.Poll(fds, 1000)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	assert.NotZero(t, fds[0].Revents&iface.PollIn)

	client, err := ln.Accept()
	require.NoError(t, err)
	defer client.Close()
	peer := sys.CandidateAddr(*client.Candidate())
	require.NotNil(t, peer)
	assert.True(t, peer.(*net.TCPAddr).IP.IsLoopback())
}

func TestDescribe(t *testing.T) {
	api := sys.New()
	assert.Equal(t, unix.EBADF.Error(), api.Describe(api.Close(-1)))
	assert.Equal(t, "", api.Describe(nil))
	assert.Equal(t, "no such host", api.Describe(&net.DNSError{Err: "no such host"}))
}
