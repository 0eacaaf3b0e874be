package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the oracle a yes/no question about the secret concept",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Session.PIN == "" || cfg.Session.UserID == "" {
				return fmt.Errorf("no saved session (join or create a lobby first)")
			}

			question := strings.Join(args, " ")
			req := map[string]string{
				"user_id":  cfg.Session.UserID,
				"question": question,
			}

			var result AskResult

			path := fmt.Sprintf("/api/v1/lobbies/%s/questions", cfg.Session.PIN)
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard [pin]",
		Short: "Show the lobby leaderboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := sessionPIN(args)
			if err != nil {
				return err
			}

			var result Leaderboard

			if err := client.Get(fmt.Sprintf("/api/v1/lobbies/%s/leaderboard", pin), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
