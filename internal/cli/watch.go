package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subshift/internal/mpv"
	"github.com/mgpai22/subshift/internal/subtitle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow mpv and print the paused position and delay changes",
	Long: `Connect to mpv and print the playback position as an SRT timestamp
whenever playback is paused, along with subtitle delay and track changes.

Pause on a line to read the exact time it should appear, then compare it with
the file to work out the delay to save.

Example:
  mpv --input-ipc-server=/tmp/mpv.sock movie.mkv &
  subshift watch --socket /tmp/mpv.sock`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("socket", "", "mpv IPC socket path")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	socket, _ := cmd.Flags().GetString("socket")
	if socket == "" {
		socket = cfg.MPVSocket
	}
	if socket == "" {
		return errors.New("no mpv socket given: use --socket or set mpv_socket in the config")
	}

	client, err := mpv.Dial(ctx, socket)
	if err != nil {
		return err
	}
	defer client.Close()

	out := cmd.OutOrStdout()
	watcher := &mpv.TimeWatcher{
		Client: client,
		Logger: logger,
		OnTime: func(ms int64) {
			fmt.Fprintf(out, "time   %s\n", subtitle.FormatCanonical(float64(ms)))
		},
		OnDelay: func(ms int64) {
			line := "delay  " + subtitle.FormatSignedMs(ms)
			if human := subtitle.FormatHuman(ms); human != "" {
				line += " (" + human + ")"
			}
			fmt.Fprintln(out, line)
		},
		OnTrack: func(id int64) {
			if id == 0 {
				fmt.Fprintln(out, "track  off")
				return
			}
			fmt.Fprintf(out, "track  %d\n", id)
		},
	}

	logger.Infow("Watching mpv", "socket", socket)
	err = watcher.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
