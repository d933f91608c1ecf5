// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/claimchat/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask [claim]",
	Short: "Search papers for a single claim, optionally verifying it",
	Long: `Ask runs one turn of the workflow without an interactive session: it
searches the literature for the claim, prints the retrieved papers, and with
--verify runs the AI verification pass over them. The exchange is saved to
the local history like any other conversation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Bool("verify", false, "run AI verification after the search")
	askCmd.Flags().Bool("json", false, "output the assistant reply as JSON")
	askCmd.Flags().Int("year-min", 0, "only papers published in or after this year")
	askCmd.Flags().Int("year-max", 0, "only papers published in or before this year")
	askCmd.Flags().String("topic", "", "restrict the search to a topic")
	askCmd.Flags().String("subtopic", "", "restrict the search to a subtopic")
	askCmd.Flags().String("source", "", "restrict to one source: arxiv or nasa-ads")
	askCmd.Flags().Float64("min-relevance", 0, "minimum relevance score (0-10)")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	claim := strings.Join(args, " ")

	orch, _, closeStore, err := openSession()
	if err != nil {
		return err
	}
	defer closeStore()

	orch.SetFilters(filtersFromFlags(cmd))

	reply, err := orch.Send(context.Background(), claim)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	verify, _ := cmd.Flags().GetBool("verify")

	if verify && reply.Metadata != nil {
		// Verify the assistant reply that was just appended (index 1:
		// the user message is index 0).
		if _, err := orch.Verify(context.Background(), 1); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			reply = orch.Messages()[1]
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reply)
	}

	fmt.Println(reply.Content)
	if reply.Metadata != nil {
		formatPapers(os.Stdout, reply.Metadata.Papers, reply.Metadata.SearchMeta)
		if reply.Metadata.Verification != nil {
			fmt.Println()
			formatVerification(os.Stdout, reply.Metadata.Verification)
		}
	}
	return nil
}

func filtersFromFlags(cmd *cobra.Command) types.SearchFilters {
	yearMin, _ := cmd.Flags().GetInt("year-min")
	yearMax, _ := cmd.Flags().GetInt("year-max")
	topic, _ := cmd.Flags().GetString("topic")
	subtopic, _ := cmd.Flags().GetString("subtopic")
	source, _ := cmd.Flags().GetString("source")
	minRelevance, _ := cmd.Flags().GetFloat64("min-relevance")

	return types.SearchFilters{
		YearMin:      yearMin,
		YearMax:      yearMax,
		Topic:        topic,
		Subtopic:     subtopic,
		Source:       types.PaperSource(source),
		MinRelevance: minRelevance,
	}
}
