package command

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	config "github.com/erdemkosk/udplink/internal"
	"github.com/erdemkosk/udplink/internal/logic"
)

type StartCommand struct {
}

func (command StartCommand) Execute(cmd *cobra.Command, args []string) {
	configuration := loadConfiguration(cmd.Flags())
	out := cmd.OutOrStdout()

	printBanner(out, configuration)

	logChannel := make(chan string, config.LOG_BUFFER)
	done := listenForLogs(logChannel, out)

	session, err := NewSession(configuration, logChannel)
	cobra.CheckErr(err)

	session.StartReceiver()
	runLoop(session, cmd.InOrStdin())
	session.Close()

	close(logChannel)
	<-done
}

// runLoop feeds lines to the session until quit or end of input. Lines have
// no length limit; oversized messages are rejected by the sender instead.
func runLoop(session *Session, in io.Reader) {
	reader := bufio.NewReader(in)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if !session.Handle(line) {
				return
			}
		}

		if err == io.EOF {
			session.Logs <- "input closed, quitting"
			return
		}
		if err != nil {
			session.Logs <- fmt.Sprintf("%scannot read input, quitting: %v%s", config.PASTEL_RED, err, config.RESET)
			return
		}
	}
}

func listenForLogs(logs <-chan string, out io.Writer) chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)
		for log := range logs {
			fmt.Fprintln(out, log)
		}
	}()

	return done
}

func printBanner(out io.Writer, configuration *config.Configuration) {
	fmt.Fprintln(out, config.PASTEL_CYAN+"--------------------configuration--------------------"+config.RESET)
	fmt.Fprintln(out, configuration)
	fmt.Fprintln(out, "host            = "+logic.DescribeHost())
	fmt.Fprintln(out, config.PASTEL_CYAN+"-----------------------------------------------------"+config.RESET)
	fmt.Fprintln(out, usage())
}
