package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subshift/internal/cooldown"
	"github.com/mgpai22/subshift/internal/history"
	"github.com/mgpai22/subshift/internal/mpv"
	"github.com/mgpai22/subshift/internal/save"
	"github.com/mgpai22/subshift/internal/server"
	"github.com/mgpai22/subshift/internal/trash"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP control surface",
	Long: `Serve the shift engine over HTTP for other front ends.

Endpoints:
  GET    /health
  POST   /api/v1/shift       {"text", "delay", "fps_source", "fps_target"}
  GET    /api/v1/timestamp?value=1:30.5
  POST   /api/v1/save        save the active mpv track (needs --socket)
  GET    /api/v1/history
  DELETE /api/v1/history

Examples:
  subshift serve
  subshift serve --listen 127.0.0.1:9000 --socket /tmp/mpv.sock`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Listen address (default from config, 127.0.0.1:8765)")
	serveCmd.Flags().String("socket", "", "mpv IPC socket path for saving")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr, _ := cmd.Flags().GetString("listen")
	if addr == "" {
		addr = cfg.ListenAddr
	}
	socket, _ := cmd.Flags().GetString("socket")
	if socket == "" {
		socket = cfg.MPVSocket
	}

	opts := server.Options{
		Cooldown: cooldown.New(time.Duration(cfg.SaveCooldownMs) * time.Millisecond),
		Logger:   logger,
		Version:  version,
	}

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath, cfg.HistoryLimit)
		if err != nil {
			logger.Warnw("History disabled", "error", err)
		} else {
			defer store.Close()
			opts.History = store
		}
	}

	if socket != "" {
		client, err := mpv.Dial(ctx, socket)
		if err != nil {
			return err
		}
		defer client.Close()

		trasher, err := trash.Default(cfg.TrashDir)
		if err != nil {
			return err
		}
		host := mpv.NewHost(client, logger)
		opts.Saver = save.New(host, trasher, logger)
		opts.VideoFPS = host.VideoFPS
		logger.Infow("Connected to mpv", "socket", socket)
	} else {
		logger.Infow("No mpv socket configured; saving is disabled")
	}

	return server.New(opts).Run(ctx, addr)
}
