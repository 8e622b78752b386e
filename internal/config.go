package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	BUFFER_SIZE    = 1024
	COMMAND_PREFIX = "/"
	LOG_BUFFER     = 64
)

const DEFAULT_CONFIGURATION_FILE = "configuration.properties"

const (
	RECEIVER_PORT_KEY    = "receiverPort"
	SENDER_PORT_KEY      = "senderPort"
	DESTINATION_IP_KEY   = "destinationIp"
	DESTINATION_PORT_KEY = "destinationPort"
)

type CommandType int32

const (
	START CommandType = 1
	UI    CommandType = 2
)

const (
	RESET          = "\033[0m"
	RED            = "\033[31m"
	PASTEL_RED     = "\033[91m"
	PASTEL_GREEN   = "\033[92m"
	PASTEL_YELLOW  = "\033[93m"
	PASTEL_BLUE    = "\033[94m"
	PASTEL_MAGENTA = "\033[95m"
	PASTEL_CYAN    = "\033[96m"
	PASTEL_WHITE   = "\033[97m"
	PASTEL_GRAY    = "\033[37m"
	PASTEL_PURPLE  = "\033[35m"
	PASTEL_ORANGE  = "\033[38;5;214m"
)

const (
	AppLogo = ` _   _ ____  ____  _ _       _
| | | |  _ \|  _ \| (_)_ __ | | __
| | | | | | | |_) | | | '_ \| |/ /
| |_| | |_| |  __/| | | | | |   <
 \___/|____/|_|   |_|_|_| |_|_|\_\`
)

// Configuration holds the four endpoint parameters resolved once at startup.
type Configuration struct {
	ReceiverPort    int
	SenderPort      int
	DestinationIp   string
	DestinationPort int
}

// LoadConfiguration reads a properties file. Every key is required and
// numeric keys must be valid port numbers; there are no defaults.
func LoadConfiguration(path string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("properties")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "cannot read configuration file %s", path)
	}

	receiverPort, err := portProperty(v, RECEIVER_PORT_KEY)
	if err != nil {
		return nil, err
	}

	senderPort, err := portProperty(v, SENDER_PORT_KEY)
	if err != nil {
		return nil, err
	}

	destinationIp, err := requiredProperty(v, DESTINATION_IP_KEY)
	if err != nil {
		return nil, err
	}

	destinationPort, err := portProperty(v, DESTINATION_PORT_KEY)
	if err != nil {
		return nil, err
	}

	return &Configuration{
		ReceiverPort:    receiverPort,
		SenderPort:      senderPort,
		DestinationIp:   destinationIp,
		DestinationPort: destinationPort,
	}, nil
}

func (configuration *Configuration) String() string {
	return fmt.Sprintf("%s    = %d\n%s      = %d\n%s   = %s\n%s = %d",
		RECEIVER_PORT_KEY, configuration.ReceiverPort,
		SENDER_PORT_KEY, configuration.SenderPort,
		DESTINATION_IP_KEY, configuration.DestinationIp,
		DESTINATION_PORT_KEY, configuration.DestinationPort)
}

func requiredProperty(v *viper.Viper, key string) (string, error) {
	if !v.IsSet(key) {
		return "", errors.Errorf("missing property %q", key)
	}

	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return "", errors.Errorf("empty property %q", key)
	}

	return value, nil
}

func portProperty(v *viper.Viper, key string) (int, error) {
	raw, err := requiredProperty(v, key)
	if err != nil {
		return 0, err
	}

	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot convert property %q to a number", key)
	}

	if port < 0 || port > 65535 {
		return 0, errors.Errorf("property %q out of port range: %d", key, port)
	}

	return port, nil
}
