package socket

import (
	"errors"

	"github.com/moqsien/alewa/sys"
)

func SetKeepAlive(s *Socket, secs int) error {
	if secs <= 0 {
		return errors.New("invalid keep-alive time!")
	}
	if err := s.SetOption(sys.SOL_SOCKET, sys.SO_KEEPALIVE, 1); err != nil {
		return err
	}
	if err := s.SetOption(sys.IPPROTO_TCP, sys.TCP_KEEPINTVL, secs); err != nil {
		return err
	}
	return s.SetOption(sys.IPPROTO_TCP, sys.TCP_KEEPIDLE, secs)
}
