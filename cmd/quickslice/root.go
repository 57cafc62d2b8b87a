// Command quickslice is the CLI entrypoint for the record query engine
// service, mirroring graphjin's cmd/ module: a thin root command plus one
// file per subcommand.
package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version string
	commit  string

	log     *zap.SugaredLogger
	cfgPath string
)

func main() {
	log = newBootLogger().Sugar()

	cobra.EnableCommandSorting = false
	root := &cobra.Command{
		Use:   "quickslice",
		Short: "quickslice is a GraphQL-friendly record query engine for AT Protocol indexers",
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "./config", "path to config file (without extension)")

	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		log.Fatalf("%s", err)
	}
}

func newBootLogger() *zap.Logger {
	l, _ := zap.NewDevelopment()
	return l
}
