package eloop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moqsien/alewa/eloop"
	"github.com/moqsien/alewa/fake"
	"github.com/moqsien/alewa/iface"
	"github.com/moqsien/alewa/poll"
	"github.com/moqsien/alewa/socket"
)

func newClient(t *testing.T, api *fake.NetApi, fd int) *socket.Socket {
	t.Helper()
	api.RetCode = fd
	infos, err := socket.Resolve(api, "", "", nil)
	require.NoError(t, err)
	defer infos.Close()
	s, err := socket.Open(api, infos)
	require.NoError(t, err)
	return s
}

func TestRegistryAddRegistersWithPoller(t *testing.T) {
	api := fake.New()
	p := poll.New(api)
	r := eloop.NewConnRegistry(p, iface.PollIn)

	r.Add(newClient(t, api, 5))
	r.Add(newClient(t, api, 6))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, iface.PollFd{Fd: 5, Events: iface.PollIn}, p.At(0))

	s, found := r.Get(6)
	require.True(t, found)
	assert.Equal(t, 6, s.Fd())
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	api := fake.New()
	p := poll.New(api)
	r := eloop.NewConnRegistry(p, iface.PollIn)

	r.Add(newClient(t, api, 5))
	assert.Panics(t, func() { r.Add(newClient(t, api, 5)) })
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, p.Len())

	empty := newClient(t, api, 8)
	empty.Move()
	assert.Panics(t, func() { r.Add(empty) })
}

func TestRegistryRemove(t *testing.T) {
	api := fake.New()
	p := poll.New(api)
	p.Register(3, iface.PollIn)
	r := eloop.NewConnRegistry(p, iface.PollIn)
	r.Add(newClient(t, api, 5))
	r.Add(newClient(t, api, 6))

	assert.True(t, r.Remove(5))
	assert.False(t, r.Remove(5))
	assert.Equal(t, 1, api.IsClosed(5))
	assert.Equal(t, -1, p.Index(5))
	assert.Equal(t, 0, p.Index(3))
	assert.Equal(t, 1, r.Len())

	r.CloseAll()
	assert.Zero(t, r.Len())
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 1, api.IsClosed(6))
}
