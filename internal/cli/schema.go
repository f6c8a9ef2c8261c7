package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdata/opschat/internal/catalog"
)

// SchemaCmd returns the schema inspection command
func SchemaCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the rendered schema description",
		Long:  `Fetch the data dictionary and print the schema text embedded into prompts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func runSchema(verbose bool) error {
	logger := newLogger(verbose)

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, cleanup, err := newDictionaryStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	loader := catalog.NewLoader(store, logger)
	cat, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	fmt.Println(cat.Text())
	return nil
}
