// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/claimchat/internal/gateway"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show the search filter vocabulary the backend supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := gateway.NewClient(backendConfig())
		vocab, err := client.Filters(context.Background())
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(vocab)
		}

		fmt.Printf("Years:   %d - %d\n", vocab.YearMin, vocab.YearMax)
		fmt.Printf("Sources: ")
		for i, s := range vocab.Sources {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(string(s))
		}
		fmt.Println()

		fmt.Println("Topics:")
		topics := append([]string(nil), vocab.Topics...)
		sort.Strings(topics)
		for _, t := range topics {
			fmt.Printf("  %s\n", t)
			for _, sub := range vocab.Subtopics[t] {
				fmt.Printf("    %s\n", sub)
			}
		}
		return nil
	},
}

func init() {
	filtersCmd.Flags().Bool("json", false, "output the vocabulary as JSON")
	rootCmd.AddCommand(filtersCmd)
}
