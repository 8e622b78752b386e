package udp

import (
	"fmt"
	"net"
	"sync"

	config "github.com/erdemkosk/udplink/internal"
	"github.com/erdemkosk/udplink/internal/worker"
)

// UdpServer is the receiving side. While started it owns one bound socket and
// a receive loop on its own worker that hands every datagram to the listener.
type UdpServer struct {
	Port int
	Logs chan<- string

	worker *worker.Worker

	mu       sync.Mutex
	conn     *net.UDPConn
	listener func(Result)
}

func CreateNewUdpServer(port int, logs chan<- string) *UdpServer {
	return &UdpServer{Port: port, Logs: logs, worker: worker.New()}
}

func (server *UdpServer) IsStarted() bool {
	server.mu.Lock()
	defer server.mu.Unlock()

	return server.conn != nil
}

// LocalAddr is the bound address, or nil when stopped.
func (server *UdpServer) LocalAddr() *net.UDPAddr {
	server.mu.Lock()
	defer server.mu.Unlock()

	if server.conn == nil {
		return nil
	}

	return server.conn.LocalAddr().(*net.UDPAddr)
}

// StartService binds the configured port and starts the receive loop. A bind
// failure is delivered to listener as an *ErrorResult and the server stays
// stopped. Calling it on a started server does nothing.
func (server *UdpServer) StartService(listener func(Result)) {
	server.mu.Lock()

	if server.conn != nil {
		server.mu.Unlock()
		server.log("--> UDP RECEIVER is already started")
		return
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: server.Port})
	if err != nil {
		server.mu.Unlock()

		kind := classifyOpenError(err)
		server.fail(listener, newServiceError(kind, err, "%s", openErrorMessage(kind, "receive")))
		return
	}

	server.conn = conn
	server.listener = listener
	server.mu.Unlock()

	if err := server.worker.Submit(func() { server.receiveLoop(conn) }); err != nil {
		server.mu.Lock()
		closed := ""
		if server.conn == conn {
			closed = server.closeChannelLocked()
		}
		server.mu.Unlock()
		server.log(closed)

		server.fail(listener, newServiceError(StateFailure, err, "receive worker is not accepting work"))
		return
	}

	server.log(fmt.Sprintf("--> UDP RECEIVER started on %s", conn.LocalAddr()))
}

// EndServiceImmediately closes the socket whether or not a receive is
// pending. The pending receive ends without reaching the listener. A datagram
// whose delivery already began when EndServiceImmediately was called may still
// reach the listener once, on the receive worker.
func (server *UdpServer) EndServiceImmediately() {
	server.mu.Lock()

	if server.conn == nil {
		server.mu.Unlock()
		server.log("--> UDP RECEIVER is already stopped")
		return
	}

	closed := server.closeChannelLocked()
	server.mu.Unlock()

	server.log(closed)
}

// Shutdown ends the service and waits for the receive worker to exit.
func (server *UdpServer) Shutdown() {
	if server.IsStarted() {
		server.EndServiceImmediately()
	}

	server.worker.Shutdown()
	server.worker.Wait()
}

func (server *UdpServer) receiveLoop(conn *net.UDPConn) {
	buffer := make([]byte, config.BUFFER_SIZE)

	for {
		n, sourceAddress, err := conn.ReadFromUDP(buffer)
		if err != nil {
			server.onReceiveError(conn, err)
			return
		}

		receivedData := make([]byte, n)
		copy(receivedData, buffer[:n])

		listener, current := server.listenerFor(conn)
		if !current {
			return
		}

		if listener != nil {
			listener(&SuccessResult{SourceAddress: sourceAddress, ReceivedData: receivedData})
		}
	}
}

// listenerFor reports the listener and whether conn is still the live socket.
func (server *UdpServer) listenerFor(conn *net.UDPConn) (func(Result), bool) {
	server.mu.Lock()
	defer server.mu.Unlock()

	return server.listener, server.conn == conn
}

func (server *UdpServer) onReceiveError(conn *net.UDPConn, err error) {
	server.mu.Lock()

	if server.conn != conn {
		server.mu.Unlock()
		server.log("--> UDP RECEIVER receive loop finished")
		return
	}

	listener := server.listener
	closed := server.closeChannelLocked()
	server.mu.Unlock()

	server.log(closed)

	kind := classifyTransferError(err)
	server.fail(listener, newServiceError(kind, err, "%s", transferErrorMessage(kind, "receive")))
}

func (server *UdpServer) fail(listener func(Result), err *ServiceError) {
	server.log(fmt.Sprintf("--> UDP RECEIVER %v", err))

	if listener != nil {
		listener(&ErrorResult{Err: err})
	}
}

// closeChannelLocked must be called with mu held. The handle is cleared even
// when Close fails. It returns the line to log once mu is released.
func (server *UdpServer) closeChannelLocked() string {
	err := server.conn.Close()
	server.conn = nil
	server.listener = nil

	if err != nil {
		return fmt.Sprintf("--> UDP RECEIVER cannot close channel: %v", err)
	}

	return "--> UDP RECEIVER closed channel"
}

func (server *UdpServer) log(message string) {
	if server.Logs != nil && message != "" {
		server.Logs <- message
	}
}
