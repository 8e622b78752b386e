package udp

import (
	"fmt"
	"net"
	"sync"

	"github.com/pkg/errors"

	config "github.com/erdemkosk/udplink/internal"
	"github.com/erdemkosk/udplink/internal/worker"
)

var errNotStarted = errors.New("sender service is not started; call StartService before SendMessage")

// UdpClient is the sending side. Port and Destination are fixed for the life
// of the client; every SendMessage is one task on the client's worker, so
// datagrams leave in call order.
type UdpClient struct {
	Port        int
	Destination *net.UDPAddr
	Logs        chan<- string

	worker *worker.Worker

	mu   sync.Mutex
	conn *net.UDPConn
}

func CreateNewUdpClient(port int, destination *net.UDPAddr, logs chan<- string) *UdpClient {
	return &UdpClient{Port: port, Destination: destination, Logs: logs, worker: worker.New()}
}

func (client *UdpClient) IsStarted() bool {
	client.mu.Lock()
	defer client.mu.Unlock()

	return client.conn != nil
}

// LocalAddr is the bound address, or nil when stopped.
func (client *UdpClient) LocalAddr() *net.UDPAddr {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.conn == nil {
		return nil
	}

	return client.conn.LocalAddr().(*net.UDPAddr)
}

// StartService binds the local port. It returns a *ServiceError on failure
// and is a no-op when already started.
func (client *UdpClient) StartService() error {
	client.mu.Lock()

	if client.conn != nil {
		client.mu.Unlock()
		client.log("--> UDP SENDER is already started")
		return nil
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: client.Port})
	if err != nil {
		client.mu.Unlock()
		kind := classifyOpenError(err)
		return newServiceError(kind, err, "%s", openErrorMessage(kind, "send"))
	}

	client.conn = conn
	client.mu.Unlock()

	client.log(fmt.Sprintf("--> UDP SENDER started on %s", conn.LocalAddr()))

	return nil
}

// SendMessage queues message for the destination. completion is called
// exactly once: with nil after the datagram was written, or with a
// *ServiceError. When the client is not started it is called before
// SendMessage returns and nothing is queued.
func (client *UdpClient) SendMessage(message string, completion func(error)) {
	if completion == nil {
		completion = func(error) {}
	}

	if !client.IsStarted() {
		completion(newServiceError(StateFailure, errNotStarted, "cannot send message"))
		return
	}

	err := client.worker.Submit(func() {
		closed, err := client.send(message)
		client.log(closed)
		completion(err)
	})
	if err != nil {
		completion(newServiceError(StateFailure, err, "cannot send message"))
	}
}

// send writes one datagram with mu held. When a write failure closed the
// channel it also returns the close log line.
func (client *UdpClient) send(message string) (string, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.conn == nil {
		return "", newServiceError(ChannelClosedFailure, net.ErrClosed, "send channel is already closed")
	}

	payload := []byte(message)
	if len(payload) > config.BUFFER_SIZE {
		return "", newServiceError(OverflowFailure, nil,
			"message of %d bytes does not fit the %d byte send buffer", len(payload), config.BUFFER_SIZE)
	}

	buffer := make([]byte, 0, config.BUFFER_SIZE)
	buffer = append(buffer, payload...)

	if _, err := client.conn.WriteToUDP(buffer, client.Destination); err != nil {
		kind := classifyTransferError(err)
		closed := client.closeChannelLocked()

		return closed, newServiceError(kind, err, "%s", transferErrorMessage(kind, "send"))
	}

	return "", nil
}

// EndServiceImmediately closes the socket. Sends still queued complete with
// a ChannelClosedFailure.
func (client *UdpClient) EndServiceImmediately() {
	client.mu.Lock()

	if client.conn == nil {
		client.mu.Unlock()
		client.log("--> UDP SENDER is already stopped")
		return
	}

	closed := client.closeChannelLocked()
	client.mu.Unlock()

	client.log(closed)
}

// Shutdown ends the service and waits until queued sends have completed.
func (client *UdpClient) Shutdown() {
	if client.IsStarted() {
		client.EndServiceImmediately()
	}

	client.worker.Shutdown()
	client.worker.Wait()
}

// closeChannelLocked must be called with mu held. It returns the line to log
// once mu is released.
func (client *UdpClient) closeChannelLocked() string {
	err := client.conn.Close()
	client.conn = nil

	if err != nil {
		return fmt.Sprintf("--> UDP SENDER cannot close channel: %v", err)
	}

	return "--> UDP SENDER closed channel"
}

func (client *UdpClient) log(message string) {
	if client.Logs != nil && message != "" {
		client.Logs <- message
	}
}
