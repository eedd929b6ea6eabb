/*
Poller keeps the registration set handed to NetworkApi.Poll. Insertion
order defines the layout of the poll array; Deregister swaps the last
registration into the freed slot, so callers must not rely on order.
*/
package poll

import (
	"fmt"

	"github.com/moqsien/alewa/iface"
	"github.com/moqsien/alewa/utils/errs"
)

type Poller struct {
	api  iface.NetworkApi
	pfds []iface.PollFd
}

func New(api iface.NetworkApi) *Poller {
	return &Poller{api: api}
}

func (that *Poller) Register(fd int, events int16) {
	that.pfds = append(that.pfds, iface.PollFd{Fd: int32(fd), Events: events})
}

func (that *Poller) AddRead(fd iface.IFd) {
	that.Register(fd.GetFd(), iface.PollIn)
}

func (that *Poller) AddReadWrite(fd iface.IFd) {
	that.Register(fd.GetFd(), iface.PollIn|iface.PollOut)
}

// Deregister removes the registration at idx by swapping in the last one.
func (that *Poller) Deregister(idx int) {
	if idx < 0 || idx >= len(that.pfds) {
		panic(fmt.Sprintf("poll: deregister index %d out of range [0, %d)", idx, len(that.pfds)))
	}
	last := len(that.pfds) - 1
	that.pfds[idx] = that.pfds[last]
	that.pfds = that.pfds[:last]
}

// RemoveFd deregisters fd and reports whether it was registered.
func (that *Poller) RemoveFd(fd iface.IFd) bool {
	idx := that.Index(fd.GetFd())
	if idx < 0 {
		return false
	}
	that.Deregister(idx)
	return true
}

// Index returns the position of fd in the registration set, or -1.
func (that *Poller) Index(fd int) int {
	for i := range that.pfds {
		if int(that.pfds[i].Fd) == fd {
			return i
		}
	}
	return -1
}

func (that *Poller) Len() int {
	return len(that.pfds)
}

func (that *Poller) At(idx int) iface.PollFd {
	return that.pfds[idx]
}

// Poll waits until a registered descriptor is ready or timeout
// milliseconds pass; a negative timeout waits forever and zero does not
// wait at all. It returns the number of ready descriptors. With nothing
// registered nothing can become ready, so it returns at once.
func (that *Poller) Poll(timeout int) (int, error) {
	if len(that.pfds) == 0 {
		return 0, nil
	}
	n, err := that.api.Poll(that.pfds, timeout)
	if err != nil {
		return 0, errs.New(errs.ErrPoll, "poll failed", errs.NoFd, that.api.Describe(err), err)
	}
	return n, nil
}
