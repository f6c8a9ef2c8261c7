package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opsdata/opschat/internal/chat"
)

// ChatCmd returns the interactive chat command
func ChatCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Converse with the operational database",
		Long:  `Open an interactive session that turns questions into SQL and answers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func runChat(verbose bool) error {
	logger := newLogger(verbose)

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\naté logo")
		cancel()
		os.Exit(0)
	}()

	agent, loader, cleanup, err := buildAgent(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := loader.Load(ctx); err != nil {
		return err
	}

	sess := chat.NewSession("local", agent, logger)
	runREPL(ctx, sess)
	return nil
}

func runREPL(ctx context.Context, sess *chat.Session) {
	title := color.New(color.FgCyan, color.Bold)
	promptColor := color.New(color.FgCyan)
	sqlColor := color.New(color.FgYellow)
	answerColor := color.New(color.FgGreen)
	errColor := color.New(color.FgRed)

	title.Println("Chatbot OPS")
	fmt.Println("Faça sua pergunta e pressione Enter. Linha vazia para sair.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		promptColor.Print("> ")
		q, err := reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Println("error reading input:", err)
			}
			fmt.Println("até logo")
			return
		}
		q = strings.TrimSpace(q)
		if q == "" {
			fmt.Println("até logo")
			return
		}

		// Short cooldown to avoid hammering the LLM if user spams enter.
		time.Sleep(200 * time.Millisecond)

		res := sess.ProcessTurn(ctx, q)
		fmt.Println()
		if res.SQL != "" {
			sqlColor.Printf("SQL: %s\n\n", res.SQL)
		}
		if res.Err != nil {
			errColor.Println(res.Reply.Content)
		} else {
			answerColor.Println(res.Reply.Content)
		}
		fmt.Println()
	}
}
