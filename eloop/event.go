package eloop

import (
	"errors"

	"github.com/moqsien/processes/logger"

	"github.com/moqsien/alewa/iface"
	"github.com/moqsien/alewa/utils/errs"
)

// dispatch walks the registrations backwards so that the swap performed by
// a removal only ever moves an already visited entry.
func (that *Eloop) dispatch() error {
	lnFd := that.Listener.Fd()
	for i := that.Poller.Len() - 1; i >= 0; i-- {
		if i >= that.Poller.Len() {
			continue
		}
		pfd := that.Poller.At(i)
		if pfd.Revents == 0 {
			continue
		}
		fd := int(pfd.Fd)
		if fd == lnFd {
			if pfd.Revents&iface.PollIn == 0 {
				continue
			}
			if err := that.Accept(); err != nil {
				return err
			}
			continue
		}
		if err := that.track(fd, pfd.Revents); err != nil {
			return err
		}
	}
	return nil
}

func (that *Eloop) track(fd int, revents int16) error {
	if revents&iface.PollClosed != 0 {
		that.closeConn(fd)
		return nil
	}
	if that.Handler == nil {
		return nil
	}
	return that.handle(fd, that.Handler.OnTrack(fd, revents))
}

// handle applies the verdict of a handler callback for fd. Verdicts may
// arrive wrapped.
func (that *Eloop) handle(fd int, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrCloseConn):
		that.closeConn(fd)
		return nil
	case errors.Is(err, errs.ErrEngineShutdown):
		return errs.ErrEngineShutdown
	default:
		logger.Warningf("error occurs in event handler for fd=%d: %v", fd, err)
		return nil
	}
}

func (that *Eloop) closeConn(fd int) {
	if !that.Registry.Remove(fd) {
		return
	}
	if that.Handler == nil {
		return
	}
	if err := that.Handler.OnClose(fd); errors.Is(err, errs.ErrEngineShutdown) {
		that.Shutdown()
	}
}
