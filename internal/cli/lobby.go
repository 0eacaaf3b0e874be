package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newLobbyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lobby",
		Short: "Lobby management commands",
	}

	cmd.AddCommand(newLobbyCreateCmd())
	cmd.AddCommand(newLobbyGetCmd())
	cmd.AddCommand(newLobbyJoinCmd())
	cmd.AddCommand(newLobbyLeaveCmd())
	cmd.AddCommand(newLobbyStartCmd())
	cmd.AddCommand(newLobbyDeleteCmd())
	cmd.AddCommand(newLobbyReconnectCmd())
	cmd.AddCommand(newLobbyMeCmd())
	cmd.AddCommand(newLobbyQRCmd())

	return cmd
}

// sessionPIN resolves the lobby PIN from an optional positional arg, falling
// back to the saved session
func sessionPIN(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Session.PIN != "" {
		return cfg.Session.PIN, nil
	}
	return "", fmt.Errorf("no lobby PIN given and no saved session (join or create a lobby first)")
}

func newLobbyCreateCmd() *cobra.Command {
	var (
		hostName      string
		secretConcept string
		conceptCtx    string
		topic         string
		timeLimit     int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new lobby as host",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"host_name":      hostName,
				"secret_concept": secretConcept,
				"topic":          topic,
				"time_limit":     timeLimit,
			}
			if conceptCtx != "" {
				req["context"] = conceptCtx
			}

			var result CreateResult

			if err := client.Post("/api/v1/lobbies", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveSession(Session{PIN: result.PIN, UserID: result.HostID, Name: result.HostName}); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&hostName, "name", "", "Host display name (required)")
	cmd.Flags().StringVar(&secretConcept, "secret", "", "Secret concept to be guessed (required)")
	cmd.Flags().StringVar(&conceptCtx, "context", "", "Extra context for the oracle")
	cmd.Flags().StringVar(&topic, "topic", "", "Topic hint shown to participants (required)")
	cmd.Flags().IntVar(&timeLimit, "time-limit", 300, "Round time limit in seconds")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("topic")

	return cmd
}

func newLobbyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [pin]",
		Short: "Get lobby details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := sessionPIN(args)
			if err != nil {
				return err
			}

			var result LobbyInfo

			if err := client.Get(fmt.Sprintf("/api/v1/lobbies/%s", pin), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLobbyJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <pin>",
		Short: "Join a lobby as a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin := args[0]

			req := map[string]string{"participant_name": name}
			var result JoinResult

			if err := client.Post(fmt.Sprintf("/api/v1/lobbies/%s/join", pin), req, &result); err != nil {
				return err
			}

			if err := cfg.SaveSession(Session{PIN: result.PIN, UserID: result.UserID, Name: result.ParticipantName}); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLobbyLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave [pin]",
		Short: "Leave a lobby",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := sessionPIN(args)
			if err != nil {
				return err
			}

			req := map[string]string{"user_id": cfg.Session.UserID}
			if err := client.Post(fmt.Sprintf("/api/v1/lobbies/%s/leave", pin), req, nil); err != nil {
				return err
			}

			if err := cfg.ClearSession(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Left lobby %s", pin))
			return nil
		},
	}
}

func newLobbyStartCmd() *cobra.Command {
	var (
		secretConcept string
		conceptCtx    string
		topic         string
		timeLimit     int
	)

	cmd := &cobra.Command{
		Use:   "start [pin]",
		Short: "Start the round (host only)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := sessionPIN(args)
			if err != nil {
				return err
			}

			req := map[string]any{
				"host_id":    cfg.Session.UserID,
				"start_time": time.Now().UTC(),
			}
			if secretConcept != "" {
				req["secret_concept"] = secretConcept
			}
			if conceptCtx != "" {
				req["context"] = conceptCtx
			}
			if topic != "" {
				req["topic"] = topic
			}
			if timeLimit > 0 {
				req["time_limit"] = timeLimit
			}

			var result StartResult

			if err := client.Post(fmt.Sprintf("/api/v1/lobbies/%s/start", pin), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&secretConcept, "secret", "", "Replace the secret concept before starting")
	cmd.Flags().StringVar(&conceptCtx, "context", "", "Replace the oracle context before starting")
	cmd.Flags().StringVar(&topic, "topic", "", "Replace the topic before starting")
	cmd.Flags().IntVar(&timeLimit, "time-limit", 0, "Replace the time limit before starting")

	return cmd
}

func newLobbyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [pin]",
		Short: "Delete a lobby (host only)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := sessionPIN(args)
			if err != nil {
				return err
			}

			req := map[string]string{"host_id": cfg.Session.UserID}
			if err := client.Delete(fmt.Sprintf("/api/v1/lobbies/%s", pin), req); err != nil {
				return err
			}

			if err := cfg.ClearSession(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted lobby %s", pin))
			return nil
		},
	}
}

func newLobbyReconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconnect [pin]",
		Short: "Recover your lobby state from a saved session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := sessionPIN(args)
			if err != nil {
				return err
			}
			if cfg.Session.UserID == "" {
				return fmt.Errorf("no saved user id to reconnect with")
			}

			req := map[string]string{"user_id": cfg.Session.UserID}
			var result ReconnectResult

			if err := client.Post(fmt.Sprintf("/api/v1/lobbies/%s/reconnect", pin), req, &result); err != nil {
				return err
			}

			if err := cfg.SaveSession(Session{PIN: result.PIN, UserID: result.UserID, Name: result.UserName}); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLobbyMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your question history in the current lobby",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Session.PIN == "" || cfg.Session.UserID == "" {
				return fmt.Errorf("no saved session (join or create a lobby first)")
			}

			var result UserSnapshot

			path := fmt.Sprintf("/api/v1/lobbies/%s/users/%s", cfg.Session.PIN, cfg.Session.UserID)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLobbyQRCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "qr [pin]",
		Short: "Download the lobby join code as a PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pin, err := sessionPIN(args)
			if err != nil {
				return err
			}

			data, err := client.GetRaw(fmt.Sprintf("/api/v1/lobbies/%s/qr", pin))
			if err != nil {
				return err
			}

			if err := os.WriteFile(outFile, data, 0644); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Wrote join code to %s", outFile))
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "join-code.png", "Output PNG path")

	return cmd
}
