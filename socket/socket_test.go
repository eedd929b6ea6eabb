package socket_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moqsien/alewa/fake"
	"github.com/moqsien/alewa/iface"
	"github.com/moqsien/alewa/socket"
	"github.com/moqsien/alewa/utils/errs"
)

func errMsg(op string, fd int) string {
	return fmt.Sprintf("%s on socket %d: Error: -5", op, fd)
}

func openSocket(t *testing.T, api *fake.NetApi) (*socket.Socket, *socket.AddrInfoList) {
	t.Helper()
	infos, err := socket.Resolve(api, "", "", nil)
	require.NoError(t, err)
	t.Cleanup(infos.Close)
	s, err := socket.Open(api, infos)
	require.NoError(t, err)
	return s, infos
}

func TestSocketConstruction(t *testing.T) {
	api := fake.New()
	api.RetCode = 7
	infos, err := socket.Resolve(api, "", "3490", socket.ListenerHints())
	require.NoError(t, err)
	defer infos.Close()

	happy, err := socket.Open(api, infos)
	require.NoError(t, err)
	defer happy.Close()
	assert.Equal(t, 7, happy.Fd())
	assert.Equal(t, "3490", api.Service)
	assert.Equal(t, iface.AF_UNSPEC, api.Hints.Family)
	assert.Equal(t, iface.AI_PASSIVE, api.Hints.Flags)

	api.RetCode = fake.Error
	sad, err := socket.Open(api, infos)
	assert.Nil(t, sad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrSocketCreation))
	assert.Equal(t, "socket constructor: Error: -5", err.Error())
}

func TestSocketTriesCandidatesInOrder(t *testing.T) {
	api := fake.New()
	api.Candidates = threeCandidates()
	var tried []int
	api.SocketFunc = func(family, _, _ int) (int, error) {
		tried = append(tried, family)
		if family == 2 {
			return 42, nil
		}
		return fake.Error, fake.ErrFake
	}
	infos, err := socket.Resolve(api, "", "", nil)
	require.NoError(t, err)
	defer infos.Close()

	s, err := socket.Open(api, infos)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, []int{10, 2}, tried)
	assert.Equal(t, 42, s.Fd())
	assert.Equal(t, 2, infos.Current().Family, "cursor stays on the winning candidate")
	require.NotNil(t, s.Candidate())
	assert.Equal(t, 2, s.Candidate().Family)
}

func TestSocketReportsLastFailure(t *testing.T) {
	api := fake.New()
	api.Candidates = threeCandidates()
	api.SocketFunc = func(family, _, _ int) (int, error) {
		return fake.Error, fmt.Errorf("family %d not supported", family)
	}
	infos, err := socket.Resolve(api, "", "", nil)
	require.NoError(t, err)
	defer infos.Close()

	_, err = socket.Open(api, infos)
	require.Error(t, err)
	assert.Equal(t, "socket constructor: family 1 not supported", err.Error())
	assert.Nil(t, infos.Current())
}

func TestSocketCandidateOutlivesList(t *testing.T) {
	api := fake.New()
	infos, err := socket.Resolve(api, "", "", nil)
	require.NoError(t, err)
	s, err := socket.Open(api, infos)
	require.NoError(t, err)
	defer s.Close()

	infos.Close()
	api.Candidates[0].Addr[0] = 0xff
	assert.Equal(t, fake.DefaultCandidate(), *s.Candidate())
}

func TestSocketResourceCleanup(t *testing.T) {
	api := fake.New()
	s, _ := openSocket(t, api)
	assert.Zero(t, api.IsClosed(0))

	s.Close()
	assert.Equal(t, 1, api.IsClosed(0))
	assert.True(t, s.IsEmpty())

	s.Close()
	assert.Equal(t, 1, api.IsClosed(0))
}

func TestSocketCloseFailureIsSwallowed(t *testing.T) {
	api := fake.New()
	api.CloseErr = fake.ErrFake
	s, _ := openSocket(t, api)

	assert.NotPanics(t, s.Close)
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 1, api.IsClosed(0))
}

func TestSocketMove(t *testing.T) {
	api := fake.New()
	socket1, _ := openSocket(t, api)

	movedTo := socket1.Move()
	assert.True(t, socket1.IsEmpty())
	assert.Nil(t, socket1.Candidate())
	socket1.Close()
	assert.Empty(t, api.Closed, "moved-from socket must not close")

	assert.Equal(t, 0, movedTo.Fd())
	movedTo.Close()
	assert.Equal(t, 1, api.IsClosed(0))
}

func TestSocketMoveFrom(t *testing.T) {
	api := fake.New()
	api.RetCode = 3
	target, _ := openSocket(t, api)
	api.RetCode = 4
	source, _ := openSocket(t, api)

	target.MoveFrom(source)
	assert.Equal(t, 1, api.IsClosed(3), "previous descriptor is released")
	assert.Equal(t, 4, target.Fd())
	assert.True(t, source.IsEmpty())

	source.Close()
	assert.Zero(t, api.IsClosed(4))
	target.Close()
	assert.Equal(t, 1, api.IsClosed(4))

	target.MoveFrom(target)
	assert.True(t, target.IsEmpty())
}

func TestSocketComparison(t *testing.T) {
	api := fake.New()
	api.RetCode = 45
	x, _ := openSocket(t, api)
	api.RetCode = 99
	y, _ := openSocket(t, api)

	assert.Zero(t, x.Compare(x))
	assert.Negative(t, x.Compare(y))
	assert.Positive(t, y.Compare(x))
}

func TestSocketOperations(t *testing.T) {
	cases := []struct {
		op   string
		kind error
		call func(s *socket.Socket, infos *socket.AddrInfoList) error
	}{
		{"bind", errs.ErrBind, func(s *socket.Socket, infos *socket.AddrInfoList) error { return s.Bind(*infos.Current()) }},
		{"connect", errs.ErrConnect, func(s *socket.Socket, infos *socket.AddrInfoList) error { return s.Connect(*infos.Current()) }},
		{"listen", errs.ErrListen, func(s *socket.Socket, _ *socket.AddrInfoList) error { return s.Listen(0) }},
		{"set_socket_option", errs.ErrOption, func(s *socket.Socket, _ *socket.AddrInfoList) error { return s.SetOption(1, 2, 3) }},
		{"set_descriptor_flag", errs.ErrFlag, func(s *socket.Socket, _ *socket.AddrInfoList) error { return s.SetFlag(2) }},
	}
	for _, tc := range cases {
		t.Run(tc.op, func(t *testing.T) {
			api := fake.New()
			happy, infos := openSocket(t, api)
			defer happy.Close()
			require.NoError(t, tc.call(happy, infos))

			sad, _ := openSocket(t, api)
			defer sad.Close()
			api.RetCode = fake.Error
			err := tc.call(sad, infos)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.kind))
			assert.True(t, errors.Is(err, fake.ErrFake))
			assert.Equal(t, errMsg(tc.op, 0), err.Error())
		})
	}
}

func TestSocketAccept(t *testing.T) {
	api := fake.New()
	api.RetCode = 9
	sock, _ := openSocket(t, api)
	defer sock.Close()

	api.RetCode = 11
	happy, err := sock.Accept()
	require.NoError(t, err)
	defer happy.Close()
	assert.Equal(t, 11, happy.Fd())
	require.NotNil(t, happy.Candidate())
	assert.Equal(t, 0xB00, happy.Candidate().Family)
	assert.Equal(t, byte(69), happy.Candidate().Addr[1])

	api.Peer.Addr[1] = 0
	assert.Equal(t, byte(69), happy.Candidate().Addr[1], "peer address is a deep copy")

	api.RetCode = fake.Error
	sad, err := sock.Accept()
	assert.Nil(t, sad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrAccept))
	assert.Equal(t, errMsg("accept", 9), err.Error())
}

func TestSocketBindAny(t *testing.T) {
	api := fake.New()
	api.Candidates = threeCandidates()
	s, infos := openSocket(t, api)
	defer s.Close()

	api.BindFunc = func(_ int, addr iface.Candidate) error {
		if addr.Family == 1 {
			return nil
		}
		return fake.ErrFake
	}
	require.NoError(t, s.BindAny(infos))
	assert.Len(t, api.Binds, 3)
	assert.Equal(t, 1, infos.Current().Family)

	infos.Reset()
	api.BindFunc = func(_ int, addr iface.Candidate) error {
		return fmt.Errorf("family %d busy", addr.Family)
	}
	err := s.BindAny(infos)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrBind))
	assert.Equal(t, "bind on socket 0: family 1 busy", err.Error())
}

func TestSocketConnectAny(t *testing.T) {
	api := fake.New()
	api.Candidates = threeCandidates()
	s, infos := openSocket(t, api)
	defer s.Close()

	api.ConnectFunc = func(_ int, addr iface.Candidate) error {
		if addr.Family == 2 {
			return nil
		}
		return fake.ErrFake
	}
	infos.Reset()
	require.NoError(t, s.ConnectAny(infos))
	assert.Len(t, api.Connects, 2)

	api.ConnectFunc = nil
	api.RetCode = fake.Error
	infos.Reset()
	err := s.ConnectAny(infos)
	require.Error(t, err)
	assert.Equal(t, errMsg("connect", 0), err.Error())
}
