package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNotReady = errors.New("one or more backends are not reachable")

func (c *cli) doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the report API and the configured storage backends answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, r := range c.app.Ready(cmd.Context()) {
				if r.Err != nil {
					failed = true
					fmt.Fprintf(c.out, "%-6s FAIL  %v\n", r.Name, r.Err)
					continue
				}
				fmt.Fprintf(c.out, "%-6s ok\n", r.Name)
			}
			if failed {
				return errNotReady
			}
			return nil
		},
	}
}
