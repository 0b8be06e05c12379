package main

import (
	"os"

	"github.com/atstracker/ats-tracking/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	command := NewAtsCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewAtsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ats [flags] [options]",
		Short: "ats keeps track of your job applications.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdGet())
	cmd.AddCommand(cli.NewCmdCreate())
	cmd.AddCommand(cli.NewCmdUpdate())
	cmd.AddCommand(cli.NewCmdDelete())
	cmd.AddCommand(cli.NewCmdExport())
	cmd.AddCommand(cli.NewCmdInit())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
