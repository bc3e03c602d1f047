package cmd

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

var chatSessionID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the funding assistant",
}

var chatSendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Send a message to the active session (or start a new one)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if chatSessionID != "" {
			if err := client.PostJSON(ctx, "/api/v1/chat/sessions/"+url.PathEscape(chatSessionID)+"/select", nil, nil); err != nil {
				return err
			}
		}
		var session chatSession
		if err := client.PostJSON(ctx, "/api/v1/chat/messages", map[string]string{"text": strings.Join(args, " ")}, &session); err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, session)
		}
		if n := len(session.Messages); n > 0 {
			printMessage(cmd.OutOrStdout(), session.Messages[n-1])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n(session %s)\n", session.ID)
		return nil
	},
}

var chatNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new chat; the session is created with the next message",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		return newClient().PostJSON(ctx, "/api/v1/chat/sessions", nil, nil)
	},
}

var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "List starred and recent sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		var list sessionList
		if err := newClient().GetJSON(ctx, "/api/v1/chat/sessions", &list); err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, list)
		}
		w := cmd.OutOrStdout()
		printSessions(w, "Starred", list.Starred, list.ActiveID)
		printSessions(w, "Recent", list.Recent, list.ActiveID)
		return nil
	},
}

var chatShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Print every message of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		var session chatSession
		if err := newClient().GetJSON(ctx, "/api/v1/chat/sessions/"+url.PathEscape(args[0]), &session); err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, session)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n\n", session.Title)
		for _, m := range session.Messages {
			printMessage(cmd.OutOrStdout(), m)
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	},
}

var chatDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		if err := newClient().Delete(ctx, "/api/v1/chat/sessions/"+url.PathEscape(args[0])); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
		return nil
	},
}

var chatStarCmd = &cobra.Command{
	Use:   "star [session-id]",
	Short: "Star or unstar a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		var resp struct {
			IsStarred bool `json:"isStarred"`
		}
		if err := newClient().PostJSON(ctx, "/api/v1/chat/sessions/"+url.PathEscape(args[0])+"/star", nil, &resp); err != nil {
			return err
		}
		state := "unstarred"
		if resp.IsStarred {
			state = "starred"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Session %s %s\n", args[0], state)
		return nil
	},
}

func printMessage(w io.Writer, m chatMessage) {
	who := "You"
	if m.Role == "assistant" {
		who = "Assistant"
	}
	fmt.Fprintf(w, "%s: %s\n", who, m.Text)
	if len(m.Data) > 0 {
		fmt.Fprintln(w)
		printItems(w, m.Data)
	}
}

func printSessions(w io.Writer, heading string, sessions []*chatSession, activeID string) {
	fmt.Fprintf(w, "%s:\n", heading)
	if len(sessions) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, s := range sessions {
		marker := " "
		if s.ID == activeID {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %s  %s (%d messages)\n", marker, s.ID, s.Title, len(s.Messages))
	}
}

func init() {
	chatSendCmd.Flags().StringVar(&chatSessionID, "session", "", "select this session before sending")
	chatCmd.AddCommand(chatSendCmd, chatNewCmd, chatListCmd, chatShowCmd, chatDeleteCmd, chatStarCmd)
	rootCmd.AddCommand(chatCmd)
}
