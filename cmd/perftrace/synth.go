package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"perftrace/internal/scenario"
	"perftrace/internal/trace"
)

var (
	synthOut  string
	synthUnit string
)

func init() {
	synthCmd.Flags().StringVarP(&synthOut, "out", "o", "", "output path (single scenario only; default: <scenario>.json)")
	synthCmd.Flags().StringVar(&synthUnit, "unit", "", "display unit override (ns|us|ms|s)")
}

var synthCmd = &cobra.Command{
	Use:   "synth <scenario.toml> [more scenarios...]",
	Short: "Synthesize trace files from scenario descriptions",
	Long: `Synth replays TOML scenario files through a tracer and writes one
Chrome trace-event document per scenario. An output path ending in .gz is
gzip-compressed. Multiple scenarios are processed in parallel.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if synthOut != "" && len(args) > 1 {
			return fmt.Errorf("--out only applies to a single scenario, got %d", len(args))
		}

		outputs := make([]string, len(args))
		g, _ := errgroup.WithContext(cmd.Context())
		for i, path := range args {
			path := path
			out := synthOut
			if out == "" {
				out = outputTraceName(path)
			}
			outputs[i] = out
			g.Go(func() error {
				return synthOne(path, out, synthUnit)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, path := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, outputs[i])
		}
		return nil
	},
}

func synthOne(scenarioPath, outPath, unitOverride string) error {
	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		return err
	}

	unit, err := sc.Unit()
	if err != nil {
		return fmt.Errorf("%s: %w", scenarioPath, err)
	}
	if unitOverride != "" {
		unit, err = trace.ParseDisplayUnit(unitOverride)
		if err != nil {
			return err
		}
	}

	tracer, err := sc.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", scenarioPath, err)
	}
	if err := tracer.Save(outPath, unit); err != nil {
		return fmt.Errorf("%s: %w", scenarioPath, err)
	}
	return nil
}

// outputTraceName derives the trace output path from a scenario path.
func outputTraceName(scenarioPath string) string {
	if strings.HasSuffix(scenarioPath, ".toml") {
		return strings.TrimSuffix(scenarioPath, ".toml") + ".json"
	}
	return scenarioPath + ".json"
}
