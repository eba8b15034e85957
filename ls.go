package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/LFroesch/shelf/internal/config"
	"github.com/LFroesch/shelf/internal/storage"
	"github.com/LFroesch/shelf/internal/utils"
)

func newLsCmd() *cobra.Command {
	lsCmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "Print a folder listing without starting the browser",
		Long: `Print the listing of a folder below the root, using the same
ordering as the browser. The path uses "/" between folder names,
for example "photos/2024".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			root := cfg.Root
			if root == "" {
				root = "."
			}

			var segments []string
			if len(args) == 1 {
				segments = lo.Compact(strings.Split(args[0], "/"))
			}
			dir, err := storage.Resolve(root, segments)
			if err != nil {
				return err
			}
			entries, err := storage.List(dir, cfg.ShowHidden)
			if err != nil {
				return err
			}
			key := storageKey(cfg.InitialSort())
			storage.Sort(entries, key)
			renderListing(cmd.OutOrStdout(), entries, key)
			return nil
		},
	}
	lsCmd.Flags().String("sort", "", "Sort: name, created_at, updated_at, last_accessed_at")
	lsCmd.Flags().Bool("hidden", false, "Show hidden files")
	return lsCmd
}

func renderListing(w io.Writer, entries []storage.Entry, key storage.Key) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "(empty folder)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Size", timeHeading(key)})

	for _, e := range entries {
		name := e.Name
		size := utils.FormatFileSize(e.Size)
		if e.IsDir {
			name += "/"
			size = "-"
		}
		t.AppendRow(table.Row{name, size, utils.FormatTime(e.Time(key))})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d items)\n", len(entries))
}

func timeHeading(key storage.Key) string {
	switch key {
	case storage.ByCreated:
		return "Created"
	case storage.ByAccessed:
		return "Accessed"
	default:
		return "Modified"
	}
}
