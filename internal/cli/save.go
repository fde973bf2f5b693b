package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subshift/internal/history"
	"github.com/mgpai22/subshift/internal/language"
	"github.com/mgpai22/subshift/internal/mpv"
	"github.com/mgpai22/subshift/internal/save"
	"github.com/mgpai22/subshift/internal/trash"
	"github.com/mgpai22/subshift/internal/video"
)

const osdDuration = 3 * time.Second

var saveCmd = &cobra.Command{
	Use:   "save [subtitle_file]",
	Short: "Save a shifted copy of a subtitle file or of mpv's active track",
	Long: `Save a shifted copy of a subtitle file next to your video.

With a file argument the file is shifted and saved. Without one, subshift
connects to mpv (--socket or mpv_socket in the config) and saves the active
external subtitle track using the player's current delay, then loads the new
file into the player.

An existing file with the same name is moved to the Trash after you confirm,
or without asking when --overwrite is set.

Examples:
  subshift save movie.en.srt --delay -1500 --include-delay
  subshift save movie.srt --dir ~/Videos --name "The Movie" -l en --include-lang
  subshift save --socket /tmp/mpv.sock --set-active`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	addShiftFlags(saveCmd)

	saveCmd.Flags().String("dir", "", "Destination folder (default: the video's or subtitle's folder)")
	saveCmd.Flags().String("name", "", "Output file name; .srt is added when missing")
	saveCmd.Flags().Bool("include-delay", false, "Add the delay to the file name (movie.-1500.srt)")
	saveCmd.Flags().Bool("include-lang", false, "Add the language to the file name (movie.en.srt)")
	saveCmd.Flags().Bool("overwrite", false, "Replace an existing file without asking")
	saveCmd.Flags().Bool("set-active", false, "Select the saved track in the player")
	saveCmd.Flags().String("socket", "", "mpv IPC socket path")
}

// saveTarget is where a save reads from, plus the defaults it suggests for
// the form fields.
type saveTarget struct {
	host     save.Host
	dir      string
	name     string
	lang     string
	delay    string
	videoFPS float64
	close    func() error
	// notify shows the outcome where the user is looking, when set
	notify func(ctx context.Context, msg string)
}

func fileTarget(cmd *cobra.Command, path string) (*saveTarget, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	tag := language.FromFilename(abs)
	if tag != "" && strings.HasSuffix(strings.ToLower(name), "."+tag) {
		name = name[:len(name)-len(tag)-1]
	}

	t := &saveTarget{
		host: &save.StaticHost{Source: abs, Prompt: stdinPrompt(cmd.ErrOrStderr())},
		dir:  filepath.Dir(abs),
		name: name,
		lang: language.Maximize(tag),
	}

	videoPath, _ := cmd.Flags().GetString("video")
	if videoPath != "" {
		info, err := video.Probe(videoPath, probeTimeout())
		if err != nil {
			logger.Warnw("Failed to probe video", "path", videoPath, "error", err)
		} else {
			t.videoFPS = info.FrameRate
		}
	}
	return t, nil
}

func playerTarget(ctx context.Context, cmd *cobra.Command, socket string) (*saveTarget, error) {
	client, err := mpv.Dial(ctx, socket)
	if err != nil {
		return nil, err
	}
	host := mpv.NewHost(client, logger)
	host.Prompt = stdinPrompt(cmd.ErrOrStderr())

	t := &saveTarget{
		host:     host,
		lang:     host.SubtitleLanguage(ctx),
		videoFPS: host.VideoFPS(ctx),
		close:    client.Close,
		notify: func(ctx context.Context, msg string) {
			if err := host.ShowText(ctx, msg, osdDuration); err != nil {
				logger.Debugw("Failed to show message in player", "error", err)
			}
		},
	}

	if media, err := host.MediaPath(ctx); err == nil && media != "" && !strings.Contains(media, "://") {
		base := filepath.Base(media)
		t.dir = filepath.Dir(media)
		t.name = strings.TrimSuffix(base, filepath.Ext(base))
		if t.name == "" {
			t.name = base
		}
	}
	if ms, err := host.SubDelayMs(ctx); err == nil && ms != 0 {
		t.delay = strconv.FormatInt(ms, 10)
	}
	return t, nil
}

func runSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		target *saveTarget
		err    error
	)
	if len(args) == 1 {
		target, err = fileTarget(cmd, args[0])
	} else {
		socket, _ := cmd.Flags().GetString("socket")
		if socket == "" {
			socket = cfg.MPVSocket
		}
		if socket == "" {
			return fmt.Errorf("no subtitle file given and no mpv socket configured")
		}
		target, err = playerTarget(ctx, cmd, socket)
	}
	if err != nil {
		return err
	}
	if target.close != nil {
		defer target.close()
	}

	req := saveRequest(cmd, target)
	opts, err := req.Options(target.videoFPS)
	if err != nil {
		return err
	}

	recordDelay(ctx, req.Delay, opts.Params.DelayMs)

	trasher, err := trash.Default(cfg.TrashDir)
	if err != nil {
		return err
	}
	saver := save.New(target.host, trasher, logger)

	logger.Infow("Saving subtitles",
		"dir", opts.Dir,
		"name", opts.Filename,
		"delay_ms", opts.Params.DelayMs,
		"fps_source", opts.Params.FPSSource,
		"fps_target", opts.Params.FPSTarget,
	)
	res := saver.Save(ctx, opts)
	if target.notify != nil {
		target.notify(ctx, res.Message)
	}
	if !res.OK() {
		return fmt.Errorf("%s: %s", res.Status, res.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Path)
	return nil
}

// saveRequest fills the form from flags, falling back to config and then to
// what the target suggests.
func saveRequest(cmd *cobra.Command, target *saveTarget) save.Request {
	flags := cmd.Flags()
	str := func(name, fallback string) string {
		if v, _ := flags.GetString(name); flags.Changed(name) {
			return v
		}
		return fallback
	}
	boolean := func(name string, fallback bool) bool {
		if v, _ := flags.GetBool(name); flags.Changed(name) {
			return v
		}
		return fallback
	}

	dir := target.dir
	if cfg.OutputDir != "" {
		dir = cfg.OutputDir
	}

	lang := target.lang
	if lang == "" {
		lang = cfg.FallbackLang
	}
	lang = str("language", lang)
	if !boolean("include-lang", cfg.LangInName) {
		lang = ""
	}

	fpsTarget := str("fps-target", "")
	return save.Request{
		Dir:          str("dir", dir),
		Filename:     str("name", target.name),
		Delay:        str("delay", target.delay),
		IncludeDelay: boolean("include-delay", cfg.DelayInName),
		Lang:         lang,
		FPSConvert:   strings.TrimSpace(fpsTarget) != "",
		FPSSource:    str("fps-source", ""),
		FPSTarget:    fpsTarget,
		Overwrite:    boolean("overwrite", cfg.Overwrite),
		SetActive:    boolean("set-active", cfg.SetActive),
	}
}

// recordDelay adds the delay to history; failures only log.
func recordDelay(ctx context.Context, raw string, ms int64) {
	if cfg.HistoryPath == "" {
		return
	}
	store, err := history.Open(cfg.HistoryPath, cfg.HistoryLimit)
	if err != nil {
		logger.Warnw("Failed to open history", "error", err)
		return
	}
	defer store.Close()

	if err := store.Add(ctx, raw, ms); err != nil {
		logger.Warnw("Failed to record delay", "error", err)
	}
}
