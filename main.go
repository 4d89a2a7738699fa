package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// flags holds the root command flags that override the config file.
type flags struct {
	configPath string
	shuffle    bool
	repeat     string
	preset     string
	volume     float64
	rate       float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "cadence [files or folders...]",
		Short: "Terminal music player",
		Long: "Cadence plays local audio files with a queue, shuffle and repeat modes, " +
			"a 10-band equalizer and a spectrum visualizer. Folders are scanned recursively.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayer(cmd, f, args)
		},
	}

	root.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (default ~/.config/cadence/config.toml, ./config.toml)")
	root.Flags().BoolVar(&f.shuffle, "shuffle", false, "enable shuffle")
	root.Flags().StringVar(&f.repeat, "repeat", "", "repeat mode: off, one or all")
	root.Flags().StringVar(&f.preset, "preset", "", "equalizer preset")
	root.Flags().Float64Var(&f.volume, "volume", 0, "volume between 0 and 1")
	root.Flags().Float64Var(&f.rate, "rate", 0, "playback rate between 0.25 and 4")

	root.AddCommand(newRecentCmd(&f), newLastfmCmd(&f))
	return root
}
