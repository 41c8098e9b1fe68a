package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_DropsOnFullBuffer(t *testing.T) {
	c := NewConn("c1", nil)

	for i := 0; i < cap(c.out); i++ {
		require.NoError(t, c.Send([]byte("frame")))
	}

	assert.ErrorIs(t, c.Send([]byte("overflow")), ErrBufferFull)
}

func TestSend_NeverBlocks(t *testing.T) {
	c := NewConn("c1", nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < cap(c.out)*2; i++ {
			_ = c.Send([]byte("frame"))
		}
		close(done)
	}()

	<-done // would hang forever if Send blocked
}
