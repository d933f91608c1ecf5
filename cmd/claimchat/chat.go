// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/claimchat/internal/conversation"
	"github.com/pdiddy/claimchat/internal/gateway"
	"github.com/pdiddy/claimchat/internal/transcript"
	"github.com/pdiddy/claimchat/pkg/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive claim-verification chat",
	Long: `Chat opens an interactive session. Type a claim to search the literature;
the assistant replies with the retrieved papers. Commands:

  /verify [n]   run AI verification on message n (default: latest papers)
  /history      list saved conversations
  /load <id>    resume a saved conversation
  /new          start a new chat
  /name <name>  rename the current chat
  /delete <id>  delete a saved conversation
  /quit         exit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// openSession wires the store, gateways, and orchestrator from config.
// The returned closer releases the history database.
func openSession() (*conversation.Orchestrator, *transcript.Store, func(), error) {
	store, closeStore, err := openStore()
	if err != nil {
		return nil, nil, nil, err
	}

	client := gateway.NewClient(backendConfig())
	orch := conversation.New(client, client, store, chatConfig(), os.Stderr)

	return orch, store, closeStore, nil
}

func runChat(cmd *cobra.Command, args []string) error {
	orch, store, closeStore, err := openSession()
	if err != nil {
		return err
	}
	defer closeStore()

	out := os.Stdout
	fmt.Fprintln(out, "claimchat — submit a claim to search the literature. /quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprintf(out, "\n[%s] > ", orch.Name())
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "/") {
			quit, err := handleCommand(out, orch, store, line)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		sendClaim(out, orch, line)
	}
}

// sendClaim runs the send protocol and renders the assistant's reply.
func sendClaim(out io.Writer, orch *conversation.Orchestrator, line string) {
	reply, err := orch.Send(context.Background(), line)
	if errors.Is(err, conversation.ErrEmptyMessage) {
		return
	}
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}

	fmt.Fprintln(out, reply.Content)
	if reply.Metadata != nil {
		formatPapers(out, reply.Metadata.Papers, reply.Metadata.SearchMeta)
		fmt.Fprintln(out, "Run /verify to score how well these papers support the claim.")
	}
}

// handleCommand dispatches a slash command. It returns true when the
// session should end.
func handleCommand(out io.Writer, orch *conversation.Orchestrator, store *transcript.Store, line string) (bool, error) {
	fields := strings.Fields(line)
	cmd, rest := fields[0], fields[1:]

	switch cmd {
	case "/quit", "/exit":
		return true, nil

	case "/new":
		orch.NewChat()
		fmt.Fprintln(out, "Started a new chat.")

	case "/history":
		orch.OpenHistory()
		formatHistory(out, store.List())
		fmt.Fprintln(out, "Use /load <id> to resume, or /close to go back.")

	case "/close":
		orch.CloseHistory()

	case "/load":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: /load <id>")
		}
		id, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return false, fmt.Errorf("invalid id %q", rest[0])
		}
		if !orch.LoadTranscript(id) {
			return false, fmt.Errorf("no conversation with id %d", id)
		}
		replay(out, orch)

	case "/name":
		if len(rest) == 0 {
			return false, fmt.Errorf("usage: /name <new name>")
		}
		orch.Rename(strings.Join(rest, " "))
		fmt.Fprintln(out, "Renamed.")

	case "/delete":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: /delete <id>")
		}
		id, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return false, fmt.Errorf("invalid id %q", rest[0])
		}
		if !store.Delete(id) {
			return false, fmt.Errorf("no conversation with id %d", id)
		}
		fmt.Fprintln(out, "Deleted.")

	case "/verify":
		return false, runVerify(out, orch, rest)

	default:
		return false, fmt.Errorf("unknown command %s", cmd)
	}

	return false, nil
}

// runVerify resolves the target message and runs the verify protocol.
// With no argument it targets the most recent message carrying papers.
func runVerify(out io.Writer, orch *conversation.Orchestrator, args []string) error {
	msgs := orch.Messages()

	index := -1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(msgs) {
			return fmt.Errorf("invalid message number %q", args[0])
		}
		index = n - 1
	} else {
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].HasPapers() {
				index = i
				break
			}
		}
		if index < 0 {
			return fmt.Errorf("nothing to verify: no message carries papers")
		}
	}

	fmt.Fprintln(out, "Analyzing papers...")
	v, err := orch.Verify(context.Background(), index)
	if err != nil {
		return err
	}

	formatVerification(out, v)
	return nil
}

// replay prints a loaded conversation so the user sees where they left off.
func replay(out io.Writer, orch *conversation.Orchestrator) {
	fmt.Fprintf(out, "Resumed %q:\n\n", orch.Name())
	for i, m := range orch.Messages() {
		speaker := "you"
		if m.Role == types.RoleAssistant {
			speaker = "assistant"
		}
		fmt.Fprintf(out, "%3d  %-9s  %s\n", i+1, speaker, truncate(m.Content, 80))
	}
}
