package command

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	config "github.com/erdemkosk/udplink/internal"
)

type ICommand interface {
	Execute(cmd *cobra.Command, args []string)
}

func CommandFactory(commandType config.CommandType) ICommand {
	switch commandType {
	case config.START:
		return &StartCommand{}
	case config.UI:
		return &UiCommand{}
	}

	return nil
}

// loadConfiguration exits the process when the configuration cannot be
// resolved; no service is created before that.
func loadConfiguration(flags *pflag.FlagSet) *config.Configuration {
	path, err := flags.GetString("config")
	cobra.CheckErr(err)

	configuration, err := config.LoadConfiguration(path)
	cobra.CheckErr(err)

	return configuration
}
