// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/claimchat/internal/transcript"
	"github.com/pdiddy/claimchat/pkg/types"
)

// formatPapers writes retrieved papers as a human-readable table to w.
func formatPapers(w io.Writer, papers []types.Paper, meta types.SearchMeta) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-56s  %-24s  %-4s  %-5s  %s\n",
		"No.", "Title", "Authors", "Year", "Rel.", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for i, p := range papers {
		year := ""
		if p.Year > 0 {
			year = fmt.Sprintf("%d", p.Year)
		}
		fmt.Fprintf(w, "%-4d  %-56s  %-24s  %-4s  %-5.1f  %s\n",
			i+1, truncate(p.Title, 56), truncate(p.Authors, 24), year, p.Relevance, p.Source)
	}

	fmt.Fprintf(w, "\n%d of %d sources", len(papers), meta.TotalSources)
	if meta.Topic != "" {
		fmt.Fprintf(w, "  [%s / %s]", meta.Topic, meta.Subtopic)
	}
	if meta.QueryTime > 0 {
		fmt.Fprintf(w, "  (%d ms)", meta.QueryTime)
	}
	fmt.Fprintln(w)
}

// formatVerification writes a verification result to w: overall score and
// verdict first, then findings and the per-paper breakdown.
func formatVerification(w io.Writer, v *types.Verification) {
	fmt.Fprintf(w, "Verification score: %d/100  %s  (confidence: %s)\n",
		v.VerificationScore, v.Verdict, v.Confidence)
	if v.PapersAnalyzed > 0 {
		fmt.Fprintf(w, "Analyzed %d papers in %.1fs\n", v.PapersAnalyzed, float64(v.ProcessingTimeMs)/1000)
	}
	if v.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", v.Summary)
	}

	if len(v.KeyFindings) > 0 {
		fmt.Fprintln(w, "\nKey findings:")
		for _, f := range v.KeyFindings {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
	if v.Limitations != "" {
		fmt.Fprintf(w, "\nLimitations: %s\n", v.Limitations)
	}

	if len(v.Analyses) > 0 {
		fmt.Fprintf(w, "\n%-46s  %-12s  %-4s  %s\n", "Paper", "Stance", "Year", "Conf.")
		fmt.Fprintln(w, strings.Repeat("-", 76))
		for _, a := range v.Analyses {
			year := ""
			if a.PaperYear > 0 {
				year = fmt.Sprintf("%d", a.PaperYear)
			}
			fmt.Fprintf(w, "%-46s  %-12s  %-4s  %d\n",
				truncate(a.PaperTitle, 46), a.Stance, year, a.Confidence)
		}
	}
}

// formatHistory writes transcript summaries as a table to w.
func formatHistory(w io.Writer, chats []transcript.Summary) {
	if len(chats) == 0 {
		fmt.Fprintln(w, "No conversations yet.")
		return
	}

	fmt.Fprintf(w, "%-14s  %-53s  %-5s  %s\n", "ID", "Name", "Msgs", "Last updated")
	fmt.Fprintln(w, strings.Repeat("-", 96))
	for _, c := range chats {
		fmt.Fprintf(w, "%-14d  %-53s  %-5d  %s\n",
			c.ID, truncate(c.Name, 53), c.MessageCount, c.LastUpdated.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "\n%d conversations\n", len(chats))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
