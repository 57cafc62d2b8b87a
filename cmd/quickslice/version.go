package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the quickslice version",
		Run: func(cmd *cobra.Command, args []string) {
			v := version
			if v == "" {
				v = "dev"
			}
			c := commit
			if c == "" {
				c = "none"
			}
			fmt.Printf("quickslice %s (%s)\n", v, c)
		},
	}
}
