package eloop

import (
	"fmt"
	"sync/atomic"

	"github.com/moqsien/alewa/poll"
	"github.com/moqsien/alewa/socket"
)

// ConnRegistry owns accepted sockets keyed by descriptor. Each entry has
// a registration in the poller; both are changed together, on the loop
// goroutine only. Len is the exception and may be read from anywhere.
type ConnRegistry struct {
	count  int64 // first for 64-bit alignment of atomic access
	poller *poll.Poller
	events int16
	conns  map[int]*socket.Socket
}

func NewConnRegistry(poller *poll.Poller, events int16) *ConnRegistry {
	return &ConnRegistry{
		poller: poller,
		events: events,
		conns:  make(map[int]*socket.Socket),
	}
}

// Add takes ownership of client and registers its descriptor. Adding a
// descriptor that is already present is a programming error.
func (that *ConnRegistry) Add(client *socket.Socket) {
	if client == nil || client.IsEmpty() {
		panic("eloop: registering an empty socket")
	}
	fd := client.Fd()
	if _, found := that.conns[fd]; found {
		panic(fmt.Sprintf("eloop: descriptor %d is already registered", fd))
	}
	that.poller.Register(fd, that.events)
	that.conns[fd] = client
	atomic.AddInt64(&that.count, 1)
}

// Remove deregisters fd and closes its socket.
func (that *ConnRegistry) Remove(fd int) bool {
	client, found := that.conns[fd]
	if !found {
		return false
	}
	that.poller.RemoveFd(client)
	delete(that.conns, fd)
	atomic.AddInt64(&that.count, -1)
	client.Close()
	return true
}

func (that *ConnRegistry) Get(fd int) (*socket.Socket, bool) {
	client, found := that.conns[fd]
	return client, found
}

func (that *ConnRegistry) Len() int {
	return int(atomic.LoadInt64(&that.count))
}

func (that *ConnRegistry) CloseAll() {
	for fd := range that.conns {
		that.Remove(fd)
	}
}
