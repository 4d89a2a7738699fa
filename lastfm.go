package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/config"
	"github.com/llehouerou/cadence/internal/lastfm"
)

func newLastfmCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lastfm",
		Short: "Last.fm integration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "login",
		Short: "Authorize cadence to update your Last.fm now-playing status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			setupConsoleLogging(cfg.Level())

			if !cfg.HasLastfmConfig() {
				return errors.New("set api_key and api_secret in the [lastfm] section of the config first")
			}

			out := cmd.OutOrStdout()
			client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
			username, sessionKey, err := lastfm.Login(cmd.Context(), client, func(url string) {
				fmt.Fprintf(out, "Open this URL to authorize cadence:\n\n  %s\n\n", url)
			})
			if err != nil {
				return fmt.Errorf("last.fm login: %w", err)
			}

			fmt.Fprintf(out, "Logged in as %s. Add this to the [lastfm] section of your config:\n\n  session_key = %q\n",
				username, sessionKey)
			return nil
		},
	})
	return cmd
}
