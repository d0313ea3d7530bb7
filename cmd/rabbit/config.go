package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/run-rabbit/internal/config"
)

var flagCheck string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in rabbit.yaml. Save it to ~/.rabbit/configs/rabbit.yaml
or ./configs/rabbit.yaml and edit it to tune the game.

Examples:
  rabbit config > ~/.rabbit/configs/rabbit.yaml
  rabbit config --check ./my-rabbit.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagCheck, "check", "", "Validate a config file instead of printing the default")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagCheck == "" {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	if _, err := config.LoadRabbit(flagCheck); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: ok\n", flagCheck)
}
