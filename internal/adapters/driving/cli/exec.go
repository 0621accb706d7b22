package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

var (
	execSession string
	execChannel string
)

var execCmd = &cobra.Command{
	Use:   "exec [keyword] [args...]",
	Short: "Execute a single keyword against a session",
	Long: `Runs one dialog keyword with its arguments, e.g.:

  botscript exec "USE WEBSITE" https://docs.example.com
  botscript exec "CREATE DRAFT" alice@example.com "Re: order" "Shipping tomorrow"
  botscript exec "FIND" "return policy" --session s-1

Without --session a fresh session is started on the given channel and
its ID printed, so follow-up keywords can target it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringVarP(&execSession, "session", "s", "", "session ID (new session if empty)")
	execCmd.Flags().StringVarP(&execChannel, "channel", "c", string(domain.ChannelWebChat),
		"channel for new sessions (webchat, whatsapp, sms)")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	if sessionService == nil || dispatchService == nil {
		return errors.New("dispatcher not configured")
	}

	ctx := context.Background()

	sessionID := execSession
	if sessionID == "" {
		session, err := sessionService.Start(ctx, "", domain.Channel(execChannel))
		if err != nil {
			return fmt.Errorf("starting session: %w", err)
		}
		sessionID = session.ID
		cmd.Printf("Session: %s\n", sessionID)
	}

	keyword := domain.Keyword(args[0])
	result, err := dispatchService.Dispatch(ctx, sessionID, keyword, args[1:])
	if err != nil {
		return err
	}

	cmd.Println(result.Message)
	if result.Value != "" {
		cmd.Println(result.Value)
	}
	return nil
}
