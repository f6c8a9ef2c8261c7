package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdata/opschat/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "opschat",
		Short: "Chat assistant for the health plan operational database",
		Long: `opschat answers natural language questions about the operational database.
It renders the data dictionary into a schema description, asks a language
model for SQL bounded by that schema, executes the query against Postgres,
and phrases the result for the end user.`,
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.ChatCmd())
	rootCmd.AddCommand(cli.AskCmd())
	rootCmd.AddCommand(cli.SchemaCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
