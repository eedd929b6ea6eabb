package iface

// NetworkApi is the capability set the core consumes from the operating
// system. Implementations report failures through the returned error and
// never panic; Describe turns such an error into the human-readable text
// the core embeds in its own errors.
type NetworkApi interface {
	Resolve(node, service string, hints *Hints) ([]Candidate, error)
	Release(list []Candidate)
	Socket(family, sockType, protocol int) (int, error)
	Close(fd int) error
	Bind(fd int, addr Candidate) error
	Connect(fd int, addr Candidate) error
	Listen(fd, backlog int) error
	Accept(fd int) (int, Candidate, error)
	SetSockOpt(fd, level, name, value int) error
	SetFlag(fd, flag int) error
	Poll(fds []PollFd, timeout int) (int, error)
	Describe(err error) string
}

type IFd interface {
	GetFd() int
}

// IEventHandler receives notifications from the event loop. The loop
// never reads or writes accepted sockets itself.
type IEventHandler interface {
	OnAccept(fd int, peer *Candidate) error
	OnTrack(fd int, revents int16) error
	OnClose(fd int) error
}
