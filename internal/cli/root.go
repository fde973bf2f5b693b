package cli

import (
	"github.com/spf13/cobra"

	"github.com/mgpai22/subshift/internal/config"
	"github.com/mgpai22/subshift/internal/logging"
)

// set at build time with -ldflags "-X github.com/mgpai22/subshift/internal/cli.version=..."
var version = "dev"

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subshift",
	Short: "Re-time SubRip subtitles by a delay and frame rate",
	Long: `Subshift moves every cue of an SRT file by a fixed delay and can rescale
timestamps between frame rates.

It works on files directly, against a running mpv player over its IPC socket,
or as a small HTTP control surface for other front ends.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		loaded, path, found, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Debugw("Loaded configuration", "path", path, "found", found)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "Config file (default ~/.config/subshift/config.toml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language code (e.g., en, es, fr)")
}
