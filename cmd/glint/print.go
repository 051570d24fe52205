package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/glint/internal/config"
	"github.com/dshills/glint/internal/decor"
	"github.com/dshills/glint/internal/diag"
)

var (
	printMarkersPath string
	printConfigPath  string
	printContext     int
)

func init() {
	printCmd.Flags().StringVarP(&printMarkersPath, "markers", "m", "", "path to the diagnostic markers JSON file")
	printCmd.Flags().StringVarP(&printConfigPath, "config", "c", "glint.toml", "path to the configuration file")
	printCmd.Flags().IntVar(&printContext, "context", 0, "lines of surrounding context to print")
	_ = printCmd.MarkFlagRequired("markers")
}

var printCmd = &cobra.Command{
	Use:   "print FILE",
	Short: "Print decorated lines to stdout",
	Long: `Print runs the decoration pipeline headlessly and writes each
decorated line with its severity icon and inline message, for use in
scripts and CI logs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrint(cmd.OutOrStdout(), args[0])
	},
}

func runPrint(out io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	markers, err := loadMarkers(printMarkersPath)
	if err != nil {
		return err
	}

	overrides, err := config.Load(printConfigPath)
	if err != nil {
		return err
	}
	cfg := config.Default().Merge(overrides)

	groups := diag.Filter(markers, diag.FilterOptions{
		Allowed:    cfg.Severities,
		MaxPerLine: cfg.MaxMarkersPerLine,
	})
	decorations, failed := decor.Build(groups, cfg)

	for _, dec := range decorations {
		line := dec.Range.StartLine

		for ctx := line - printContext; ctx < line; ctx++ {
			printSourceLine(out, ' ', ctx, lines)
		}

		icon := ' '
		if dec.Options.GutterClassName != "" {
			icon = iconFor(dec.Options.GutterClassName)
		}
		printSourceLine(out, icon, line, lines)
		if dec.Options.InlineContent != "" {
			fmt.Fprintf(out, "        | %s\n", dec.Options.InlineContent)
		}

		for ctx := line + 1; ctx <= line+printContext; ctx++ {
			printSourceLine(out, ' ', ctx, lines)
		}
		fmt.Fprintln(out)
	}

	for _, f := range failed {
		fmt.Fprintf(out, "glint: %v\n", f)
	}
	return nil
}

func printSourceLine(out io.Writer, icon rune, line int, lines []string) {
	if line < 1 || line > len(lines) {
		return
	}
	fmt.Fprintf(out, "%c %5d | %s\n", icon, line, lines[line-1])
}

func iconFor(gutterClass string) rune {
	idx := strings.LastIndex(gutterClass, "-")
	if idx < 0 {
		return '?'
	}
	sev, ok := diag.ParseSeverity(gutterClass[idx+1:])
	if !ok {
		return '?'
	}
	return sev.Icon()
}
