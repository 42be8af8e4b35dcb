package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suPer8Hu/study-assistant/internal/app"
	"github.com/suPer8Hu/study-assistant/internal/chat"
	"github.com/suPer8Hu/study-assistant/internal/config"
	"github.com/suPer8Hu/study-assistant/internal/logger"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return runChat(cmd.Context(), a.Chat, userID, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func openApp(ctx context.Context) (*app.App, error) {
	cfg := config.Load()
	if dbDSN != "" {
		cfg.DBDSN = dbDSN
	}
	if seed != 0 {
		cfg.RandomSeed = seed
	}
	// keep the terminal for the conversation
	log := logger.New(logger.Options{Level: "error", AppEnv: cfg.AppEnv})
	return app.New(ctx, cfg, log)
}

// runChat reads one message per line until EOF, "quit" or "exit", then
// ends the session.
func runChat(ctx context.Context, svc *chat.Service, uid uint64, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Study assistant ready. Type \"quit\" to leave.")

	sessionID := ""
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			break
		}
		line := sc.Text()
		if cmd := strings.ToLower(strings.TrimSpace(line)); cmd == "quit" || cmd == "exit" {
			break
		}

		res := svc.ProcessMessage(ctx, uid, line, sessionID)
		if res.SessionID != "" {
			sessionID = res.SessionID
		}
		fmt.Fprintf(out, "%s\n[%s %.2f]\n", res.Response, res.Intent, res.Confidence)
	}
	fmt.Fprintln(out)

	if sessionID != "" {
		if err := svc.EndSession(ctx, uid, sessionID); err != nil {
			return fmt.Errorf("end session: %w", err)
		}
	}
	return sc.Err()
}
