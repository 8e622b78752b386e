package udp

import (
	"net"
	"strconv"

	"github.com/pkg/errors"

	config "github.com/erdemkosk/udplink/internal"
)

// CreateUdpPeers builds the receiver and the sender from the configuration.
// Neither is started.
func CreateUdpPeers(configuration *config.Configuration, logChannel chan<- string) (*UdpServer, *UdpClient, error) {
	destination, err := net.ResolveUDPAddr("udp",
		net.JoinHostPort(configuration.DestinationIp, strconv.Itoa(configuration.DestinationPort)))
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot resolve destination address")
	}

	server := CreateNewUdpServer(configuration.ReceiverPort, logChannel)
	client := CreateNewUdpClient(configuration.SenderPort, destination, logChannel)

	return server, client, nil
}

// KillPeers stops both services and waits for their workers to finish.
func KillPeers(server *UdpServer, client *UdpClient) {
	server.Shutdown()
	client.Shutdown()
}
