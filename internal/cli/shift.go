package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subshift/internal/fileutil"
	"github.com/mgpai22/subshift/internal/subtitle"
	"github.com/mgpai22/subshift/internal/video"
)

// errNoOutput is returned when every block was dropped.
var errNoOutput = errors.New("processed subtitles were empty; nothing written")

var shiftCmd = &cobra.Command{
	Use:   "shift [subtitle_file]",
	Short: "Shift an SRT file and print or write the result",
	Long: `Shift every cue of an SRT file by a delay and optionally rescale it from
one frame rate to another.

The delay accepts plain milliseconds ("-1500") or a colon duration read from
the right as seconds, minutes and hours ("1:30.5"). Use "-" to read from stdin.
Output goes to stdout unless --output is given.

Examples:
  subshift shift movie.srt --delay 2.5
  subshift shift movie.srt --delay -1500 -o movie.fixed.srt
  subshift shift movie.srt --fps-source 25 --fps-target 23.976
  subshift shift movie.srt --video movie.mkv --fps-target 24
  cat movie.srt | subshift shift - --delay 1:00`,
	Args: cobra.ExactArgs(1),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)
	addShiftFlags(shiftCmd)
}

// addTimingFlags registers the delay and frame-rate flags.
func addTimingFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("delay", "d", "", "Delay in ms or [[h:]m:]s[.ms]")
	cmd.Flags().String("fps-source", "", "Frame rate the subtitles were timed for")
	cmd.Flags().String("fps-target", "", "Frame rate to convert to (enables conversion)")
}

// addShiftFlags registers the timing flags plus --video, shared by commands
// that re-time a subtitle file.
func addShiftFlags(cmd *cobra.Command) {
	addTimingFlags(cmd)
	cmd.Flags().String("video", "", "Video file to read the source frame rate from")
}

// shiftParams reads the shared shift flags. The source rate defaults to the
// --video file's rate when conversion is requested.
func shiftParams(cmd *cobra.Command) (subtitle.Params, error) {
	source, _ := cmd.Flags().GetString("fps-source")
	target, _ := cmd.Flags().GetString("fps-target")
	videoPath, _ := cmd.Flags().GetString("video")

	var videoFPS float64
	if strings.TrimSpace(target) != "" && strings.TrimSpace(source) == "" && videoPath != "" {
		info, err := video.Probe(videoPath, probeTimeout())
		if err != nil {
			return subtitle.Params{}, fmt.Errorf("failed to probe video: %w", err)
		}
		videoFPS = info.FrameRate
		logger.Debugw("Probed video", "path", videoPath, "fps", videoFPS, "codec", info.Codec)
	}
	return timingParams(cmd, videoFPS)
}

// timingParams reads the timing flags; videoFPS stands in for a blank source
// rate.
func timingParams(cmd *cobra.Command, videoFPS float64) (subtitle.Params, error) {
	delay, _ := cmd.Flags().GetString("delay")
	source, _ := cmd.Flags().GetString("fps-source")
	target, _ := cmd.Flags().GetString("fps-target")

	convert := strings.TrimSpace(target) != ""
	if err := subtitle.ValidateFPS(convert, source, target, videoFPS); err != nil {
		return subtitle.Params{}, err
	}
	fpsSource, fpsTarget := subtitle.ResolveFPS(convert, source, target, videoFPS)

	return subtitle.Params{
		DelayMs:   subtitle.ParseFreeform(strings.TrimSpace(delay)),
		FPSSource: fpsSource,
		FPSTarget: fpsTarget,
	}, nil
}

// readSource loads an SRT file, or stdin for "-".
func readSource(cmd *cobra.Command, path string) (*subtitle.File, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return &subtitle.File{Path: path, Text: string(data)}, nil
	}
	return subtitle.Open(path)
}

func probeTimeout() time.Duration {
	return time.Duration(cfg.FFprobeTimeoutSeconds) * time.Second
}

func logDrop(block int, reason subtitle.DropReason) {
	logger.Debugw("Dropped subtitle block", "block", block+1, "reason", string(reason))
}

func runShift(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	params, err := shiftParams(cmd)
	if err != nil {
		return err
	}
	outputPath, _ := cmd.Flags().GetString("output")

	logger.Debugw("Shifting subtitles",
		"input", args[0],
		"delay_ms", params.DelayMs,
		"fps_source", params.FPSSource,
		"fps_target", params.FPSTarget,
	)

	text, ok := src.Shift(params, logDrop)
	if !ok {
		return errNoOutput
	}

	if outputPath == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), text)
		return err
	}
	if err := fileutil.WriteFileAtomic(outputPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Infow("Subtitles written", "output", outputPath)
	return nil
}
