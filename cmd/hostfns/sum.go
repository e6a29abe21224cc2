package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hostfns/hostfns"
)

var sumCmd = &cobra.Command{
	Use:   "sum A B",
	Short: "Add two signed 32-bit integers with overflow checking",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := parseInt32(args[0])
		if err != nil {
			return err
		}
		b, err := parseInt32(args[1])
		if err != nil {
			return err
		}
		sum, err := hostfns.Sum(a, b)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sum)
		return nil
	},
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid 32-bit integer %q", s)
	}
	return int32(v), nil
}
