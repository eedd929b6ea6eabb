package iface

import "time"

const (
	PollErrAbort  PollErrorPolicy = 0
	PollErrIgnore PollErrorPolicy = 1
)

// Event bits share their values with poll(2) on linux and darwin.
const (
	PollIn   int16 = 0x1
	PollPri  int16 = 0x2
	PollOut  int16 = 0x4
	PollErr  int16 = 0x8
	PollHup  int16 = 0x10
	PollNval int16 = 0x20

	PollClosed = PollErr | PollHup | PollNval
)

const (
	NullFd     int = -1
	AF_UNSPEC  int = 0
	AI_PASSIVE int = 0x1
)

const (
	BlockingPollTimeout int = -1
	DefaultBacklog      int = 10
)

// DefaultPollTimeout bounds every wait so that a stop request is seen
// even when no descriptor becomes ready.
const DefaultPollTimeout = time.Second
