package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/app"
	"github.com/llehouerou/cadence/internal/config"
	"github.com/llehouerou/cadence/internal/icons"
	"github.com/llehouerou/cadence/internal/lastfm"
	"github.com/llehouerou/cadence/internal/mpris"
	"github.com/llehouerou/cadence/internal/notify"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/signal"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/stderr"
	"github.com/llehouerou/cadence/internal/tags"
	"github.com/llehouerou/cadence/internal/visualizer"
)

func runPlayer(cmd *cobra.Command, f flags, args []string) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}

	closeLog, err := setupFileLogging(cfg.Level())
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	mgr, err := state.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer mgr.Close()

	settings, err := startSettings(cmd.Context(), cfg, mgr, cmd, f)
	if err != nil {
		return err
	}

	var tracks []playlist.Track
	if len(args) > 0 {
		files, err := tags.Collect(args)
		if err != nil {
			return err
		}
		tracks = tags.ReadTracks(files)
		if len(tracks) == 0 {
			return fmt.Errorf("no playable files in %v", args)
		}
	}

	icons.Init(cfg.Icons)

	if err := stderr.Capture(); err != nil {
		log.Warn().Err(err).Msg("Stderr capture unavailable")
	}
	defer stderr.Restore()

	sampleRate := beep.SampleRate(cfg.SampleRate)
	chain, err := signal.New(sampleRate)
	if err != nil {
		log.Warn().Err(err).Msg("Signal chain unavailable, playing without equalizer")
		chain = nil
	}
	spk := player.NewSpeaker(sampleRate, chain)
	tr := player.NewTransport(spk,
		player.WithProcessor(spk),
		player.WithChain(chain),
		player.WithSampleInterval(cfg.ProgressInterval()),
	)

	recs := recorders(cfg, mgr)
	svc := playback.New(tr,
		playback.WithSession(playback.SessionFromSettings(settings)),
		playback.WithRecorders(recs...),
	)

	if cfg.MPRIS.Enabled {
		adapter, err := mpris.New(svc)
		if err != nil {
			log.Warn().Err(err).Msg("MPRIS unavailable")
		} else {
			defer adapter.Close()
		}
	}

	persistDone := persistSettings(svc, mgr)

	if len(tracks) > 0 {
		svc.Play(tracks[0], tracks)
	}

	kind, _ := visualizer.ParseKind(cfg.Visualizer)
	_, runErr := tea.NewProgram(app.New(svc, kind), tea.WithAltScreen()).Run()

	final := svc.Snapshot().Settings()
	if err := svc.Close(); err != nil {
		log.Warn().Err(err).Msg("Closing playback failed")
	}
	<-persistDone
	dismiss(recs)
	// flushed by the deferred mgr.Close
	mgr.ScheduleSettings(final)

	return runErr
}

// startSettings resolves the starting session: config defaults, replaced by
// the saved session when restoring, then overridden by explicit flags.
func startSettings(ctx context.Context, cfg *config.Config, mgr state.Interface, cmd *cobra.Command, f flags) (playback.Settings, error) {
	settings := cfg.Settings()
	if cfg.RestoreSession {
		saved, ok, err := mgr.LoadSettings(ctx)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("Loading saved session failed")
		case ok:
			settings = saved
		}
	}
	return applyFlags(settings, cmd, f)
}

// applyFlags overrides settings with the flags set on the command line.
func applyFlags(st playback.Settings, cmd *cobra.Command, f flags) (playback.Settings, error) {
	changed := cmd.Flags().Changed

	if changed("volume") {
		st.Volume = f.volume
	}
	if changed("rate") {
		if f.rate < playback.MinRate || f.rate > playback.MaxRate {
			return st, fmt.Errorf("--rate %v out of range [%v, %v]", f.rate, playback.MinRate, playback.MaxRate)
		}
		st.Rate = f.rate
	}
	if changed("shuffle") {
		st.Shuffle = f.shuffle
	}
	if changed("repeat") {
		mode, err := playback.ParseRepeatMode(f.repeat)
		if err != nil {
			return st, err
		}
		st.Repeat = mode
	}
	if changed("preset") {
		name, gains := playback.Preset(f.preset)
		if name != f.preset {
			return st, fmt.Errorf("unknown preset %q (known: %v)", f.preset, playback.PresetNames())
		}
		st.EqualizerPreset = name
		st.EqualizerGains = gains
		st.EqualizerEnabled = name != playback.PresetOff
	}
	return st, nil
}

// recorders returns the play-start collaborators enabled by cfg.
func recorders(cfg *config.Config, mgr playback.Recorder) []playback.Recorder {
	recs := []playback.Recorder{mgr}

	if cfg.HasLastfmConfig() && cfg.Lastfm.SessionKey != "" {
		client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
		client.SetSessionKey(cfg.Lastfm.SessionKey)
		recs = append(recs, lastfm.NewRecorder(client))
	}

	if cfg.Notifications.Enabled {
		n, err := notify.New(notify.WithTimeout(cfg.Notifications.Timeout()))
		if err != nil {
			log.Warn().Err(err).Msg("Desktop notifications unavailable")
		} else {
			recs = append(recs, notify.NewRecorder(n))
		}
	}
	return recs
}

// dismiss withdraws anything the recorders left on screen.
func dismiss(recs []playback.Recorder) {
	for _, r := range recs {
		d, ok := r.(interface{ Dismiss() error })
		if !ok {
			continue
		}
		if err := d.Dismiss(); err != nil {
			log.Debug().Err(err).Msg("Dismissing notification failed")
		}
	}
}

// persistSettings schedules a debounced save whenever a persisted setting
// changes. The returned channel closes once the service is closed.
func persistSettings(svc playback.Service, mgr state.Interface) <-chan struct{} {
	sub := svc.Subscribe()
	done := make(chan struct{})
	save := func() { mgr.ScheduleSettings(svc.Snapshot().Settings()) }

	go func() {
		defer close(done)
		for {
			select {
			case <-sub.QueueChanged:
				save()
			case <-sub.ModeChanged:
				save()
			case <-sub.OutputChanged:
				save()
			case <-sub.EqualizerChanged:
				save()
			case <-sub.Done:
				return
			}
		}
	}()
	return done
}
