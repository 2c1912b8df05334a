package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "brain",
	Short: "Memory graph shared between processes under a database lease",
	Long: `brain serves a memory graph of entities and relations to several processes
at once. The processes share nothing but a database table; every read and write
of the graph runs while holding a single lease row in that table.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
