package tcp

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web/transport"
)

func TestListenDialAccept(t *testing.T) {
	lis, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	var wg sync.WaitGroup
	defer wg.Wait()
	wg.Add(1)
	go func() {
		defer wg.Done()
		conn, err := Dial(context.Background(), lis.Addr().String())
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()

		_, err = conn.Write([]byte("ping"))
		assert.NoError(t, err)
	}()

	conn, err := lis.Accept(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	buf := make([]byte, 4)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf[:n]))
}

func TestAcceptContextCancel(t *testing.T) {
	lis, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err = lis.Accept(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAcceptClosedListener(t *testing.T) {
	lis, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, lis.Close())

	_, err = lis.Accept(context.Background())
	assert.ErrorIs(t, err, transport.ErrConnListenerClosed)

	assert.ErrorIs(t, lis.Close(), transport.ErrConnListenerClosed)
}
