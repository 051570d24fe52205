package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/glint/internal/config"
	"github.com/dshills/glint/internal/decorate"
	"github.com/dshills/glint/internal/host"
	"github.com/dshills/glint/internal/host/termhost"
)

var (
	viewMarkersPath string
	viewConfigPath  string
	viewNoWatch     bool
)

func init() {
	viewCmd.Flags().StringVarP(&viewMarkersPath, "markers", "m", "", "path to the diagnostic markers JSON file")
	viewCmd.Flags().StringVarP(&viewConfigPath, "config", "c", "glint.toml", "path to the configuration file")
	viewCmd.Flags().BoolVar(&viewNoWatch, "no-watch", false, "do not reload the configuration file on change")
	_ = viewCmd.MarkFlagRequired("markers")
}

var viewCmd = &cobra.Command{
	Use:   "view FILE",
	Short: "View a file with its diagnostics decorated",
	Long: `View opens FILE in a terminal viewer and decorates it with the
markers from the given JSON file. Arrow keys move the cursor, "d"
toggles decorations, "r" forces a refresh, and "q" quits. The
configuration file is reloaded live unless --no-watch is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runView(args[0])
	},
}

func runView(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	markers, err := loadMarkers(viewMarkersPath)
	if err != nil {
		return err
	}

	overrides, err := config.Load(viewConfigPath)
	if err != nil {
		return err
	}
	cfg := config.Default().Merge(overrides)

	h, err := termhost.New(termhost.WithTheme(cfg.Colors))
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := h.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer h.Fini()

	h.OpenDocument(host.DocumentID(filepath.Base(path)), lines)
	h.SetMarkers(markers)

	d := decorate.New(h, decorate.WithOverrides(overrides))
	defer d.Dispose()

	if !viewNoWatch {
		watcher, err := config.WatchFile(viewConfigPath, func(ov config.Overrides) {
			d.UpdateOptions(ov)
		}, nil)
		if err == nil {
			defer func() { _ = watcher.Close() }()
		}
	}

	h.Run(func(ev *tcell.EventKey) bool {
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'd':
			d.Toggle()
		case 'r':
			d.Refresh()
		}
		return true
	})

	return nil
}
