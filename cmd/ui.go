package cmd

import (
	"github.com/spf13/cobra"

	"github.com/erdemkosk/udplink/internal"
	"github.com/erdemkosk/udplink/internal/command"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Start the receiver with a terminal UI",
	Long:  `This command starts the UDP receiver and drives the session from a terminal UI.`,
	Run:   command.CommandFactory(internal.UI).Execute,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
