package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"perftrace/internal/inspect"
)

var infoCmd = &cobra.Command{
	Use:   "info <trace.json>",
	Short: "Summarize a recorded trace file",
	Long: `Info reads a Chrome trace-event document (plain or gzipped) and
prints phase counts, the covered time range, and per-track statistics.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := inspect.Read(args[0])
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), args[0], summary)
		return nil
	},
}

func printSummary(out io.Writer, path string, s *inspect.Summary) {
	header := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgYellow)
	p := message.NewPrinter(language.English)

	fmt.Fprintf(out, "%s (%s)\n", header.Sprint(path), s.DisplayTimeUnit)
	p.Fprintf(out, "  events    %d  (M=%d B=%d E=%d X=%d)\n",
		s.Events, s.Metadata, s.Begins, s.Ends, s.Completes)
	p.Fprintf(out, "  modules   %d\n", s.Modules)
	if s.Events > s.Metadata {
		fmt.Fprintf(out, "  range     %.3f .. %.3f us\n", s.MinTs, s.MaxTs)
	}

	for _, tr := range s.Tracks {
		name := tr.Name
		if name == "" {
			name = fmt.Sprintf("tid %d", tr.Tid)
		}
		line := p.Sprintf("  %-20s %6d spans  %9.3f us busy", name, tr.Spans, tr.BusyUs)
		fmt.Fprintln(out, line)
	}

	if s.Unterminated > 0 {
		fmt.Fprintln(out, warn.Sprintf("  %d span(s) left open at save time", s.Unterminated))
	}
}
