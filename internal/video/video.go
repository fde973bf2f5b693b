package video

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrNoFFprobe is returned when ffprobe is not on PATH.
var ErrNoFFprobe = errors.New("ffprobe not found in PATH")

// video file information
type Info struct {
	Path      string
	Duration  time.Duration
	Width     int
	Height    int
	FrameRate float64
	Codec     string
	HasAudio  bool
	Subtitles []SubtitleStream
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
		Tags         struct {
			Language string `json:"language"`
			Title    string `json:"title"`
		} `json:"tags"`
		Disposition struct {
			Default int `json:"default"`
			Forced  int `json:"forced"`
		} `json:"disposition"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe reads stream information for a video file with ffprobe.
func Probe(videoPath string, timeout time.Duration) (*Info, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, ErrNoFFprobe
	}

	out, err := ffmpeg.ProbeWithTimeout(videoPath, timeout, ffmpeg.KwArgs{"v": "quiet"})
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	info, err := parseProbe([]byte(out))
	if err != nil {
		return nil, err
	}
	info.Path = videoPath
	return info, nil
}

func parseProbe(data []byte) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{}
	if probe.Format.Duration != "" {
		seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse duration: %w", err)
		}
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	foundVideo := false
	for _, s := range probe.Streams {
		switch s.CodecType {
		case "video":
			if foundVideo {
				continue
			}
			foundVideo = true
			info.Codec = s.CodecName
			info.Width = s.Width
			info.Height = s.Height
			info.FrameRate = ParseFrameRate(s.AvgFrameRate)
			if info.FrameRate == 0 {
				info.FrameRate = ParseFrameRate(s.RFrameRate)
			}
		case "audio":
			info.HasAudio = true
		case "subtitle":
			info.Subtitles = append(info.Subtitles, SubtitleStream{
				Index:    len(info.Subtitles),
				Codec:    s.CodecName,
				Language: s.Tags.Language,
				Title:    s.Tags.Title,
				Default:  s.Disposition.Default == 1,
				Forced:   s.Disposition.Forced == 1,
			})
		}
	}
	if !foundVideo {
		return nil, errors.New("no video stream found")
	}
	return info, nil
}

// ParseFrameRate reads an ffprobe rate such as "24000/1001" or "25" and
// rounds it to three decimals. Unknown rates ("0/0") give 0.
func ParseFrameRate(rate string) float64 {
	rate = strings.TrimSpace(rate)
	if rate == "" {
		return 0
	}

	var value float64
	if num, den, ok := strings.Cut(rate, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0
		}
		value = n / d
	} else {
		v, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return 0
		}
		value = v
	}

	if value <= 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0
	}
	return math.Round(value*1000) / 1000
}
