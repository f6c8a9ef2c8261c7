package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// AskCmd returns the one-shot ask command
func AskCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "ask [pergunta]",
		Short: "Ask a single question and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(args[0], verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func runAsk(question string, verbose bool) error {
	logger := newLogger(verbose)

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	agent, _, cleanup, err := buildAgent(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := agent.Ask(ctx, question)
	if err != nil {
		return err
	}

	color.New(color.FgYellow).Printf("SQL:\n%s\n\n", res.SQL)
	color.New(color.FgGreen).Printf("Resposta:\n%s\n", res.Answer)
	return nil
}
