package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/yhkl-dev/NaviPlayer/config"
	"github.com/yhkl-dev/NaviPlayer/domain"
	"github.com/yhkl-dev/NaviPlayer/logging"
	"github.com/yhkl-dev/NaviPlayer/mpvplayer"
	"github.com/yhkl-dev/NaviPlayer/ui"
)

func newRootCommand() *cobra.Command {
	v := viper.New()
	var configPath string

	cmd := &cobra.Command{
		Use:   "naviplayer [flags] [media...]",
		Short: "Terminal transport controls for an embedded mpv player",
		Long: `naviplayer plays a playlist of local files or URLs in an mpv window and
drives it from the terminal with the keyboard and the mouse.

Media given as arguments replace the playlist from the config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				v.Set("playlist.items", args)
			}
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default $HOME/.config/naviplayer.toml)")
	flags.Int("start-index", 0, "playlist entry to load first")
	flags.String("base-dir", "", "directory relative playlist entries are resolved against")
	flags.Bool("auto-advance", false, "load the next entry when one ends")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-file", "", "log file (default $TMPDIR/naviplayer.log)")
	flags.String("hwdec", "auto", "mpv hardware decoding mode")

	bind(v, flags, map[string]string{
		"playlist.start_index": "start-index",
		"playlist.base_dir":    "base-dir",
		"player.auto_advance":  "auto-advance",
		"player.hwdec":         "hwdec",
		"log.level":            "log-level",
		"log.file":             "log-file",
	})

	return cmd
}

// bind maps config keys to flags; a flag only wins when set on the command line
func bind(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	closer, err := logging.Init(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mpvPlayer, err := mpvplayer.NewPlayer(ctx, mpvplayer.Options{
		Hwdec:            cfg.Player.Hwdec,
		ProgressInterval: cfg.Player.ProgressInterval(),
		DockScale:        cfg.Player.DockScale,
	})
	if err != nil {
		return errors.Wrap(err, "start player")
	}
	defer mpvPlayer.Close()

	playlist := domain.NewPlaylist(cfg.Playlist.Items, cfg.Playlist.BaseDir)
	app := ui.NewApp(ctx, cfg, playlist)
	app.Attach(mpvPlayer)

	if err := app.Run(); err != nil {
		log.Error().Err(err).Msg("application run error")
		return errors.Wrap(err, "run ui")
	}

	log.Info().Msg("exit")
	return nil
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
