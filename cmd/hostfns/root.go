package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagVerbose bool
	flagConfig  string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hostfns",
	Short: "Overflow-checked addition and a greeting, across interop boundaries",
	Long: `hostfns exposes two stateless primitives, an overflow-checked 32-bit
addition and a fixed greeting. They can be called directly (sum, hello) or
from a WebAssembly guest running against the hostfns host module (run).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a YAML config file, see hostfns.yaml.example")
	rootCmd.AddCommand(sumCmd, helloCmd, runCmd)
}
