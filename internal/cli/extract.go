package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subshift/internal/fileutil"
	"github.com/mgpai22/subshift/internal/language"
	"github.com/mgpai22/subshift/internal/subtitle"
	"github.com/mgpai22/subshift/internal/video"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an embedded subtitle track to SRT",
	Long: `Convert a text subtitle stream embedded in a video file to SRT, optionally
shifting it on the way out.

The stream is picked by --stream (its position among the file's subtitle
streams, see --list), else by --language, else the first text stream. Bitmap
formats (PGS, VobSub) cannot be converted. Frame-rate conversion uses the
video's own rate as the source unless --fps-source is given.

Examples:
  subshift extract movie.mkv --list
  subshift extract movie.mkv -l ja
  subshift extract movie.mkv --stream 2 --delay -1500 -o movie.fixed.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	addTimingFlags(extractCmd)

	extractCmd.Flags().Int("stream", -1, "Subtitle stream to extract (see --list)")
	extractCmd.Flags().Bool("list", false, "List subtitle streams and exit")
	extractCmd.Flags().Bool("overwrite", false, "Replace an existing output file")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	if !video.IsVideoFile(videoPath) {
		logger.Warnw("Input does not look like a video file", "path", videoPath)
	}

	info, err := video.Probe(videoPath, probeTimeout())
	if err != nil {
		return fmt.Errorf("failed to probe video: %w", err)
	}

	out := cmd.OutOrStdout()
	if list, _ := cmd.Flags().GetBool("list"); list {
		if len(info.Subtitles) == 0 {
			fmt.Fprintln(out, "No subtitle streams")
			return nil
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Stream", "Codec", "Language", "Title", "SRT"},
			streamRows(info.Subtitles),
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
		))
		return nil
	}

	stream, err := pickStream(cmd, info.Subtitles)
	if err != nil {
		return err
	}
	params, err := timingParams(cmd, info.FrameRate)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
		name := subtitle.SmartFilename(base, subtitle.NameOptions{
			Lang: language.Maximize(stream.Language),
		})
		outputPath = filepath.Join(filepath.Dir(videoPath), name)
	}
	if overwrite, _ := cmd.Flags().GetBool("overwrite"); !overwrite && fileutil.FileExists(outputPath) {
		return fmt.Errorf("%s already exists; use --overwrite to replace it", outputPath)
	}

	tmpDir, err := os.MkdirTemp("", "subshift-extract-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"stream", stream.Index,
		"codec", stream.Codec,
		"language", stream.Language,
		"output", outputPath,
	)

	raw := filepath.Join(tmpDir, "stream.srt")
	if err := video.ExtractSubtitle(cmd.Context(), videoPath, stream.Index, raw); err != nil {
		return err
	}
	src, err := subtitle.Open(raw)
	if err != nil {
		return err
	}

	text, ok := src.Shift(params, logDrop)
	if !ok {
		return errNoOutput
	}
	if err := fileutil.WriteFileAtomic(outputPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintln(out, outputPath)
	return nil
}

func pickStream(cmd *cobra.Command, streams []video.SubtitleStream) (video.SubtitleStream, error) {
	index, _ := cmd.Flags().GetInt("stream")
	if index < 0 {
		lang, _ := cmd.Flags().GetString("language")
		return video.SelectSubtitle(streams, lang)
	}

	if index >= len(streams) {
		return video.SubtitleStream{}, fmt.Errorf(
			"stream %d out of range: the file has %d subtitle streams",
			index,
			len(streams),
		)
	}
	stream := streams[index]
	if !stream.TextBased() {
		return video.SubtitleStream{}, fmt.Errorf(
			"stream %d is %s, a bitmap format that cannot be converted to SRT",
			index,
			stream.Codec,
		)
	}
	return stream, nil
}

func streamRows(streams []video.SubtitleStream) [][]string {
	rows := make([][]string, 0, len(streams))
	for _, s := range streams {
		title := s.Title
		switch {
		case s.Default && s.Forced:
			title = strings.TrimSpace(title + " (default, forced)")
		case s.Default:
			title = strings.TrimSpace(title + " (default)")
		case s.Forced:
			title = strings.TrimSpace(title + " (forced)")
		}
		srt := "no"
		if s.TextBased() {
			srt = "yes"
		}
		rows = append(rows, []string{strconv.Itoa(s.Index), s.Codec, s.Language, title, srt})
	}
	return rows
}
