package socket

import (
	"github.com/moqsien/alewa/iface"
	"github.com/moqsien/alewa/utils/errs"
)

// AddrInfoList owns the candidates of one resolution call and walks them
// with a forward-only cursor.
type AddrInfoList struct {
	api        iface.NetworkApi
	head       []iface.Candidate // as returned by the api, handed back on Close
	candidates []iface.Candidate
	iter       int
	released   bool
}

func Resolve(api iface.NetworkApi, node, service string, hints *iface.Hints) (*AddrInfoList, error) {
	head, err := api.Resolve(node, service, hints)
	if err != nil {
		return nil, errs.New(errs.ErrResolution, "getaddrinfo", errs.NoFd, api.Describe(err), err)
	}
	l := &AddrInfoList{
		api:        api,
		head:       head,
		candidates: make([]iface.Candidate, len(head)),
	}
	for i, c := range head {
		l.candidates[i] = c.Clone()
	}
	return l, nil
}

// Current returns the candidate under the cursor, nil once exhausted.
func (that *AddrInfoList) Current() *iface.Candidate {
	if that.iter >= len(that.candidates) {
		return nil
	}
	return &that.candidates[that.iter]
}

// Advance moves the cursor forward and returns the new current candidate.
// Advancing an exhausted list is a programming error.
func (that *AddrInfoList) Advance() *iface.Candidate {
	if that.iter >= len(that.candidates) {
		panic("socket: advance past the end of AddrInfoList")
	}
	that.iter++
	return that.Current()
}

func (that *AddrInfoList) Reset() {
	that.iter = 0
}

func (that *AddrInfoList) Len() int {
	return len(that.candidates)
}

// Close hands the resolved sequence back to the api. Only the first call
// releases anything.
func (that *AddrInfoList) Close() {
	if that.released {
		return
	}
	that.released = true
	that.api.Release(that.head)
	that.head = nil
}
