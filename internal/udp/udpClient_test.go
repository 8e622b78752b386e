package udp

import (
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/erdemkosk/udplink/internal"
)

func listenDestination(t *testing.T) *net.UDPConn {
	t.Helper()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func startClient(t *testing.T, destination *net.UDPConn) *UdpClient {
	t.Helper()

	client := CreateNewUdpClient(0, destination.LocalAddr().(*net.UDPAddr), drainLogs(t))
	t.Cleanup(client.Shutdown)

	require.NoError(t, client.StartService())
	require.True(t, client.IsStarted())

	return client
}

func readDatagram(t *testing.T, conn *net.UDPConn) (string, *net.UDPAddr) {
	t.Helper()

	buffer := make([]byte, 2*config.BUFFER_SIZE)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(waitFor)))

	n, addr, err := conn.ReadFromUDP(buffer)
	require.NoError(t, err)

	return string(buffer[:n]), addr
}

func waitCompletion(t *testing.T, completions chan error) error {
	t.Helper()

	select {
	case err := <-completions:
		return err
	case <-time.After(waitFor):
		t.Fatal("completion was not called")
		return nil
	}
}

func TestClientSendsToDestination(t *testing.T) {
	destination := listenDestination(t)
	client := startClient(t, destination)

	completions := make(chan error, 1)
	client.SendMessage("hello", func(err error) { completions <- err })

	assert.NoError(t, waitCompletion(t, completions))

	message, source := readDatagram(t, destination)
	assert.Equal(t, "hello", message)
	assert.Equal(t, client.LocalAddr().Port, source.Port)
}

func TestClientSendsInCallOrder(t *testing.T) {
	destination := listenDestination(t)
	client := startClient(t, destination)

	var mu sync.Mutex
	completed := make([]string, 0)
	done := make(chan struct{})

	messages := []string{"A", "B", "C", "D"}
	for i, message := range messages {
		message := message
		last := i == len(messages)-1
		client.SendMessage(message, func(err error) {
			assert.NoError(t, err)

			mu.Lock()
			completed = append(completed, message)
			mu.Unlock()

			if last {
				close(done)
			}
		})
	}

	for _, expected := range messages {
		message, _ := readDatagram(t, destination)
		assert.Equal(t, expected, message)
	}

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("sends did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, messages, completed)
}

func TestClientSendBeforeStartFailsSynchronously(t *testing.T) {
	client := CreateNewUdpClient(0, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9}, nil)
	t.Cleanup(client.Shutdown)

	called := false
	client.SendMessage("never", func(err error) {
		called = true
		assert.Equal(t, StateFailure, KindOf(err))
	})

	assert.True(t, called)
	assert.Equal(t, 0, client.worker.Pending())
}

func TestClientSendAfterStopFails(t *testing.T) {
	destination := listenDestination(t)
	client := startClient(t, destination)
	client.EndServiceImmediately()

	var got error
	client.SendMessage("late", func(err error) { got = err })

	assert.Equal(t, StateFailure, KindOf(got))
}

func TestClientStartIsIdempotent(t *testing.T) {
	destination := listenDestination(t)
	client := startClient(t, destination)
	addr := client.LocalAddr()

	assert.NoError(t, client.StartService())
	assert.Equal(t, addr, client.LocalAddr())
}

func TestClientStopIsIdempotent(t *testing.T) {
	destination := listenDestination(t)
	client := startClient(t, destination)

	client.EndServiceImmediately()
	assert.False(t, client.IsStarted())

	client.EndServiceImmediately()
	assert.False(t, client.IsStarted())
}

func TestClientBindFailure(t *testing.T) {
	occupied, err := net.ListenUDP("udp", &net.UDPAddr{Port: 0})
	require.NoError(t, err)
	defer occupied.Close()

	client := CreateNewUdpClient(occupied.LocalAddr().(*net.UDPAddr).Port, occupied.LocalAddr().(*net.UDPAddr), nil)
	t.Cleanup(client.Shutdown)

	err = client.StartService()
	require.Error(t, err)
	assert.Equal(t, BindFailure, KindOf(err))
	assert.NotNil(t, errors.Cause(err))
	assert.False(t, client.IsStarted())
}

func TestClientOverflowBoundary(t *testing.T) {
	destination := listenDestination(t)
	client := startClient(t, destination)

	completions := make(chan error, 2)

	client.SendMessage(strings.Repeat("y", config.BUFFER_SIZE+1), func(err error) { completions <- err })
	err := waitCompletion(t, completions)
	assert.Equal(t, OverflowFailure, KindOf(err))
	assert.True(t, client.IsStarted())

	full := strings.Repeat("z", config.BUFFER_SIZE)
	client.SendMessage(full, func(err error) { completions <- err })
	assert.NoError(t, waitCompletion(t, completions))

	message, _ := readDatagram(t, destination)
	assert.Equal(t, full, message)
}

func TestClientQueuedSendAfterStopReportsClosedChannel(t *testing.T) {
	destination := listenDestination(t)
	client := startClient(t, destination)

	release := make(chan struct{})
	require.NoError(t, client.worker.Submit(func() { <-release }))

	completions := make(chan error, 1)
	client.SendMessage("queued", func(err error) { completions <- err })

	client.EndServiceImmediately()
	close(release)

	assert.Equal(t, ChannelClosedFailure, KindOf(waitCompletion(t, completions)))
}

func TestRoundTrip(t *testing.T) {
	server, results := startServer(t)

	client := CreateNewUdpClient(0,
		&net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: server.LocalAddr().Port}, drainLogs(t))
	t.Cleanup(client.Shutdown)
	require.NoError(t, client.StartService())

	completions := make(chan error, 1)
	client.SendMessage("hello", func(err error) { completions <- err })
	require.NoError(t, waitCompletion(t, completions))

	success, ok := nextResult(t, results).(*SuccessResult)
	require.True(t, ok)
	assert.Equal(t, "hello", success.Text())
	assert.Equal(t, client.LocalAddr().Port, success.SourceAddress.Port)
}

func TestClientWriteFailureClosesChannel(t *testing.T) {
	destination := listenDestination(t)
	client := startClient(t, destination)

	client.mu.Lock()
	conn := client.conn
	client.mu.Unlock()
	require.NoError(t, conn.Close())

	completions := make(chan error, 2)
	client.SendMessage("after close", func(err error) { completions <- err })

	err := waitCompletion(t, completions)
	assert.Equal(t, ChannelClosedFailure, KindOf(err))
	assert.ErrorIs(t, err, net.ErrClosed)
	assert.False(t, client.IsStarted())

	select {
	case extra := <-completions:
		t.Fatalf("completion called twice, second with %v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestClientLockIsFreeWhileLogsAreBlocked(t *testing.T) {
	destination := listenDestination(t)
	logs := make(chan string)

	client := CreateNewUdpClient(0, destination.LocalAddr().(*net.UDPAddr), logs)
	started := make(chan error, 1)
	go func() { started <- client.StartService() }()

	assert.Eventually(t, client.IsStarted, waitFor, 10*time.Millisecond)
	<-logs
	require.NoError(t, <-started)

	stopped := make(chan struct{})
	go func() {
		client.EndServiceImmediately()
		close(stopped)
	}()

	assert.Eventually(t, func() bool { return !client.IsStarted() }, waitFor, 10*time.Millisecond)
	assert.Nil(t, client.LocalAddr())

	<-logs
	<-stopped
	client.Shutdown()
}
