package command

import (
	"fmt"

	config "github.com/erdemkosk/udplink/internal"
	"github.com/erdemkosk/udplink/internal/udp"
)

// Session connects user input to the receiver and the sender. Everything it
// reports goes to Logs.
type Session struct {
	Server *udp.UdpServer
	Client *udp.UdpClient
	Logs   chan<- string
}

func NewSession(configuration *config.Configuration, logs chan<- string) (*Session, error) {
	server, client, err := udp.CreateUdpPeers(configuration, logs)
	if err != nil {
		return nil, err
	}

	return &Session{Server: server, Client: client, Logs: logs}, nil
}

func (session *Session) StartReceiver() {
	session.Server.StartService(session.onResult)
}

// Handle runs one line of input. It returns false once the user quit.
func (session *Session) Handle(line string) bool {
	input := ParseInput(line)

	switch input.Kind {
	case MessageInput:
		session.send(input.Message)
	case CommandInput:
		return session.runCommand(input)
	}

	return true
}

// Close stops both services and waits for their workers.
func (session *Session) Close() {
	udp.KillPeers(session.Server, session.Client)
}

func (session *Session) runCommand(input Input) bool {
	switch input.Command {
	case QUIT:
		session.Logs <- "quitting"
		return false
	case START_SENDER:
		if err := session.Client.StartService(); err != nil {
			session.Logs <- fmt.Sprintf("%scannot start sender service: %v%s", config.PASTEL_RED, err, config.RESET)
		}
	case STOP_SENDER:
		session.Client.EndServiceImmediately()
	case START_RECEIVER:
		session.StartReceiver()
	case STOP_RECEIVER:
		session.Server.EndServiceImmediately()
	case STATUS:
		session.Logs <- session.status()
	case HELP:
		session.Logs <- usage()
	default:
		session.Logs <- fmt.Sprintf("%sinvalid command: %s%s", config.PASTEL_YELLOW, input.Raw, config.RESET)
	}

	return true
}

func (session *Session) send(message string) {
	session.Logs <- fmt.Sprintf("sending message:\n%s", message)

	session.Client.SendMessage(message, func(err error) {
		if err != nil {
			session.Logs <- fmt.Sprintf("%scannot send message: %v%s", config.PASTEL_RED, err, config.RESET)
			return
		}

		session.Logs <- "message sent"
	})
}

func (session *Session) onResult(result udp.Result) {
	switch result := result.(type) {
	case *udp.SuccessResult:
		session.Logs <- fmt.Sprintf("%sreceived from %s:%s\n%s", config.PASTEL_GREEN, result.SourceAddress, config.RESET, result.Text())
	case *udp.ErrorResult:
		session.Logs <- fmt.Sprintf("%sreceive task failed: %v%s", config.PASTEL_RED, result.Err, config.RESET)
	}
}

func (session *Session) status() string {
	return fmt.Sprintf("receiver: %s, sender: %s -> %s",
		describeState(session.Server.IsStarted(), session.Server.LocalAddr()),
		describeState(session.Client.IsStarted(), session.Client.LocalAddr()),
		session.Client.Destination)
}

func describeState(started bool, addr fmt.Stringer) string {
	if !started {
		return "stopped"
	}

	return "started on " + addr.String()
}
