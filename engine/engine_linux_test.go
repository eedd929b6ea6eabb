//go:build linux

package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moqsien/alewa/engine"
	"github.com/moqsien/alewa/iface"
	"github.com/moqsien/alewa/sys"
)

func TestStopIdleServer(t *testing.T) {
	eng := engine.New(sys.New())
	done := make(chan error, 1)
	go func() {
		done <- eng.Serve(nil, "0", 10, nil)
	}()

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, eng.GetConnCount())
	eng.Stop()
	waitServe(t, done, 3*iface.DefaultPollTimeout)
}
