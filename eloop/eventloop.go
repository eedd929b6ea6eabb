package eloop

import (
	"errors"
	"runtime"
	"sync/atomic"

	"github.com/moqsien/processes/logger"

	"github.com/moqsien/alewa/iface"
	"github.com/moqsien/alewa/poll"
	"github.com/moqsien/alewa/socket"
	"github.com/moqsien/alewa/utils/errs"
)

type Eloop struct {
	Listener  *socket.Socket      // listening socket, owned by the caller
	Poller    *poll.Poller        // poller
	Registry  *ConnRegistry       // accepted connections
	Handler   iface.IEventHandler // optional
	Options   *iface.Options      // normalized options
	IsClosing int32               // set by Shutdown
}

// New builds a loop around a bound listener and registers the listener
// for read readiness.
func New(api iface.NetworkApi, ln *socket.Socket, h iface.IEventHandler, opts *iface.Options) (*Eloop, error) {
	opts, err := NormalizeOptions(opts)
	if err != nil {
		return nil, err
	}
	p := poll.New(api)
	p.AddRead(ln)
	return &Eloop{
		Listener: ln,
		Poller:   p,
		Registry: NewConnRegistry(p, opts.ClientEvents),
		Handler:  h,
		Options:  opts,
	}, nil
}

// Run polls until a fatal error occurs or a shutdown is requested, in
// which case it returns errs.ErrEngineShutdown.
func (that *Eloop) Run() error {
	if that.Options.LockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}
	timeout := pollTimeout(that.Options)
	for {
		if atomic.LoadInt32(&that.IsClosing) == 1 {
			return errs.ErrEngineShutdown
		}
		n, err := that.Poller.Poll(timeout)
		if err != nil {
			if that.Options.OnPollError == iface.PollErrIgnore {
				logger.Warningf("error occurs in poll, polling again: %v", err)
				runtime.Gosched()
				continue
			}
			logger.Errorf("error occurs in poll: %v", err)
			return err
		}
		if n == 0 {
			runtime.Gosched()
			continue
		}
		if err = that.dispatch(); err != nil {
			return err
		}
	}
}

// Accept takes one pending connection off the listener and registers it.
// Spurious readiness of the non-blocking listener is not an error.
func (that *Eloop) Accept() error {
	client, err := that.Listener.Accept()
	if err != nil {
		if errors.Is(err, iface.ErrWouldBlock) {
			return nil
		}
		return err
	}
	if secs := keepAliveSecs(that.Options); secs > 0 {
		if err = socket.SetKeepAlive(client, secs); err != nil {
			logger.Warningf("keep-alive on accepted socket: %v", err)
		}
	}
	fd := client.Fd()
	that.Registry.Add(client)
	if that.Handler == nil {
		return nil
	}
	return that.handle(fd, that.Handler.OnAccept(fd, client.Candidate()))
}

func (that *Eloop) Shutdown() {
	atomic.StoreInt32(&that.IsClosing, 1)
}

func (that *Eloop) GetConnCount() int {
	return that.Registry.Len()
}

// Close drops every registered connection. The listener stays with its owner.
func (that *Eloop) Close() {
	that.Registry.CloseAll()
}
