package cmd

import (
	"github.com/spf13/cobra"

	"github.com/erdemkosk/udplink/internal"
	"github.com/erdemkosk/udplink/internal/command"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the receiver and read commands from stdin",
	Long: `This command starts the UDP receiver and reads lines from stdin.
Lines starting with "/" are commands (/start-sender, /stop-sender, /quit, ...),
every other non-blank line is sent to the destination.`,
	Run: command.CommandFactory(internal.START).Execute,
}

func init() {
	rootCmd.AddCommand(startCmd)
}
