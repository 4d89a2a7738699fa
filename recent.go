package main

import (
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/config"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/ui/render"
)

func newRecentCmd(f *flags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently played tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			setupConsoleLogging(cfg.Level())

			mgr, err := state.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer mgr.Close()

			plays, err := mgr.RecentlyPlayed(cmd.Context(), limit)
			if err != nil {
				return err
			}
			writeRecent(os.Stdout, plays)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all kept entries)")
	return cmd
}

// writeRecent prints plays as a table, most recent first.
func writeRecent(w io.Writer, plays []state.Play) {
	if len(plays) == 0 {
		io.WriteString(w, "Nothing played yet.\n")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "Artist", "Album", "Length", "Played"})

	for i, p := range plays {
		t.AppendRow(table.Row{
			strconv.Itoa(i + 1),
			render.Truncate(p.Track.Title, 40),
			render.Truncate(p.Track.Artist, 30),
			render.Truncate(p.Track.Album, 30),
			render.Duration(p.Track.Duration),
			humanize.Time(p.PlayedAt),
		})
	}
	t.Render()
}
