/*
Package engine runs a single-threaded TCP server: it binds a listener,
then polls, accepts and tracks client descriptors until it is stopped.
*/
package engine

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/moqsien/processes/logger"

	"github.com/moqsien/alewa/eloop"
	"github.com/moqsien/alewa/iface"
	"github.com/moqsien/alewa/socket"
	"github.com/moqsien/alewa/utils/errs"
)

type Engine struct {
	Api       iface.NetworkApi
	Ln        *socket.Socket
	MainLoop  *eloop.Eloop
	Handler   iface.IEventHandler
	Options   *iface.Options
	IsClosing int32
	mu        sync.Mutex
}

func New(api iface.NetworkApi) *Engine {
	return &Engine{Api: api}
}

// Serve listens on port with the given backlog and runs the event loop on
// the calling goroutine. It returns nil after Stop or when the handler
// asks for a shutdown, and the first fatal error otherwise. Every
// descriptor it opened is closed before it returns.
func (that *Engine) Serve(h iface.IEventHandler, port string, backlog int, opts *iface.Options) (err error) {
	that.Handler = h
	if that.Options, err = eloop.NormalizeOptions(opts); err != nil {
		return err
	}
	ln, err := socket.CreateListener(that.Api, port)
	if err != nil {
		return err
	}
	defer ln.Close()

	el, err := eloop.New(that.Api, ln, h, that.Options)
	if err != nil {
		return err
	}
	defer el.Close()

	if err = ln.Listen(backlog); err != nil {
		return err
	}

	that.mu.Lock()
	that.Ln, that.MainLoop = ln, el
	closing := atomic.LoadInt32(&that.IsClosing) == 1
	that.mu.Unlock()
	if closing {
		el.Shutdown()
	}

	logger.Println("[Serve] listening on port", port, "fd", ln.Fd(), "backlog", backlog)
	err = el.Run()
	if errors.Is(err, errs.ErrEngineShutdown) {
		logger.Println("[Serve] shutdown, connections left:", el.GetConnCount())
		return nil
	}
	return err
}

// Stop asks the loop to return before its next poll. With the default
// options that is at most iface.DefaultPollTimeout away. Stop and
// GetConnCount may be called from any goroutine.
func (that *Engine) Stop() {
	that.mu.Lock()
	defer that.mu.Unlock()
	atomic.StoreInt32(&that.IsClosing, 1)
	if that.MainLoop != nil {
		that.MainLoop.Shutdown()
	}
}

func (that *Engine) GetConnCount() int {
	that.mu.Lock()
	el := that.MainLoop
	that.mu.Unlock()
	if el == nil {
		return 0
	}
	return el.GetConnCount()
}
