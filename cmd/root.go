package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	config "github.com/erdemkosk/udplink/internal"
)

var rootCmd = &cobra.Command{
	Use:   "udplink",
	Short: "Udplink is a CLI tool for exchanging text over UDP",
	Long: `Udplink receives datagrams on a fixed local port and sends typed lines
to a fixed destination. Ports and destination come from a properties file.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DEFAULT_CONFIGURATION_FILE, "path to the properties file")
}
