// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/claimchat/internal/transcript"
	"github.com/pdiddy/claimchat/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved conversations (list, show, rename, delete, export)",
	Long: `History manages the local store of chat transcripts. Conversations are
listed newest first; deleting is permanent.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved conversations, most recently updated first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		formatHistory(os.Stdout, store.List())
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseChatID(args[0])
		if err != nil {
			return err
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		chat, ok := store.Get(id)
		if !ok {
			return fmt.Errorf("no conversation with id %d", id)
		}

		fmt.Printf("%s  (%d messages, created %s)\n\n",
			chat.Name, chat.MessageCount, chat.CreatedAt.Local().Format("2006-01-02 15:04"))
		for _, m := range chat.Messages {
			speaker := "you"
			if m.Role == types.RoleAssistant {
				speaker = "assistant"
			}
			fmt.Printf("%-9s  %s\n", speaker, m.Content)
			if m.Metadata != nil {
				formatPapers(os.Stdout, m.Metadata.Papers, m.Metadata.SearchMeta)
			}
		}
		return nil
	},
}

var historyRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a saved conversation",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseChatID(args[0])
		if err != nil {
			return err
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if _, ok := store.Rename(id, strings.Join(args[1:], " ")); !ok {
			return fmt.Errorf("no conversation with id %d", id)
		}
		fmt.Println("Renamed.")
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseChatID(args[0])
		if err != nil {
			return err
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if !store.Delete(id) {
			return fmt.Errorf("no conversation with id %d", id)
		}
		fmt.Println("Deleted.")
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all conversations to YAML or JSON on stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		switch format {
		case "yaml", "":
			return store.ExportYAML(os.Stdout)
		case "json":
			return store.ExportJSON(os.Stdout)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
	},
}

func init() {
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyRenameCmd, historyDeleteCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

// openStore opens the history database without the gateway wiring, for
// commands that only touch local state.
func openStore() (*transcript.Store, func(), error) {
	slot, err := transcript.OpenSQLiteSlot(storeConfig().DBPath)
	if err != nil {
		return nil, nil, err
	}
	return transcript.NewStore(slot, os.Stderr), func() { slot.Close() }, nil
}

func parseChatID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid conversation id %q", s)
	}
	return id, nil
}
