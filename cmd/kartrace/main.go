package main

import (
	"github.com/spf13/cobra"

	"kartrace/internal/cli"
	"kartrace/internal/config"
	"kartrace/internal/game"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "opens the race window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Current.Validate(); err != nil {
				return err
			}
			return game.RunDesktop(config.Current)
		},
	}
	cmd.Flags().BoolVar(&config.Current.Audio, "audio", config.Current.Audio, "play sound effects")
	cmd.Flags().IntVar(&config.Current.WindowW, "window-width", config.Current.WindowW, "window width in screen pixels")
	cmd.Flags().IntVar(&config.Current.WindowH, "window-height", config.Current.WindowH, "window height in screen pixels")
	return cmd
}

func main() {
	cli.Execute(newRunCmd())
}
