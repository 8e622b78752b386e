package command

import (
	"strings"

	config "github.com/erdemkosk/udplink/internal"
)

type InputKind int

const (
	NoInput InputKind = iota
	MessageInput
	CommandInput
)

type CommandName string

const (
	QUIT           CommandName = "quit"
	START_SENDER   CommandName = "start-sender"
	STOP_SENDER    CommandName = "stop-sender"
	START_RECEIVER CommandName = "start-receiver"
	STOP_RECEIVER  CommandName = "stop-receiver"
	STATUS         CommandName = "status"
	HELP           CommandName = "help"
	UNKNOWN        CommandName = ""
)

var knownCommands = []CommandName{QUIT, START_SENDER, STOP_SENDER, START_RECEIVER, STOP_RECEIVER, STATUS, HELP}

type Input struct {
	Kind    InputKind
	Message string
	Command CommandName
	Raw     string
}

// ParseInput classifies one line. Lines starting with the command prefix are
// commands, blank lines are ignored and anything else is sent verbatim.
func ParseInput(line string) Input {
	if strings.HasPrefix(line, config.COMMAND_PREFIX) {
		name := strings.TrimSpace(strings.TrimPrefix(line, config.COMMAND_PREFIX))

		for _, command := range knownCommands {
			if string(command) == name {
				return Input{Kind: CommandInput, Command: command, Raw: line}
			}
		}

		return Input{Kind: CommandInput, Command: UNKNOWN, Raw: line}
	}

	if strings.TrimSpace(line) == "" {
		return Input{Kind: NoInput, Raw: line}
	}

	return Input{Kind: MessageInput, Message: line, Raw: line}
}

func usage() string {
	names := make([]string, 0, len(knownCommands))
	for _, command := range knownCommands {
		names = append(names, config.COMMAND_PREFIX+string(command))
	}

	return "commands: " + strings.Join(names, ", ") + "; any other line is sent as a message"
}
