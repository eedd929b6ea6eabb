package eloop

import (
	"fmt"
	"time"

	"github.com/moqsien/alewa/iface"
)

func DefaultOptions() *iface.Options {
	return &iface.Options{
		PollTimeout:  iface.DefaultPollTimeout,
		OnPollError:  iface.PollErrAbort,
		ClientEvents: iface.PollIn,
	}
}

// NormalizeOptions validates opts and returns a copy with defaults filled
// in. A nil opts yields DefaultOptions.
func NormalizeOptions(opts *iface.Options) (*iface.Options, error) {
	if opts == nil {
		return DefaultOptions(), nil
	}
	o := *opts
	if o.PollTimeout == 0 {
		o.PollTimeout = iface.DefaultPollTimeout
	}
	if o.ConnKeepAlive < 0 {
		return nil, fmt.Errorf("keep-alive must not be negative, got %v", o.ConnKeepAlive)
	}
	switch o.OnPollError {
	case iface.PollErrAbort, iface.PollErrIgnore:
	default:
		return nil, fmt.Errorf("unknown poll error policy %v", o.OnPollError)
	}
	if o.ClientEvents == 0 {
		o.ClientEvents = iface.PollIn
	}
	return &o, nil
}

// pollTimeout converts the options into the millisecond argument of poll.
func pollTimeout(o *iface.Options) int {
	switch {
	case o.BusyPoll:
		return 0
	case o.PollTimeout < 0:
		return iface.BlockingPollTimeout
	}
	d := o.PollTimeout
	if d == 0 {
		d = iface.DefaultPollTimeout
	}
	ms := int(d / time.Millisecond)
	if ms == 0 {
		ms = 1
	}
	return ms
}

func keepAliveSecs(o *iface.Options) int {
	if o.ConnKeepAlive <= 0 {
		return 0
	}
	secs := int(o.ConnKeepAlive / time.Second)
	if secs == 0 {
		secs = 1
	}
	return secs
}
