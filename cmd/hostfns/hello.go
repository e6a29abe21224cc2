package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hostfns/hostfns"
)

var helloCmd = &cobra.Command{
	Use:   "hello",
	Short: "Print the greeting",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), hostfns.Hello())
	},
}
