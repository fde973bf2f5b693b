package video

import (
	"testing"
	"time"
)

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"24000/1001", 23.976},
		{"30000/1001", 29.97},
		{"25/1", 25},
		{"25", 25},
		{"0/0", 0},
		{"", 0},
		{"abc", 0},
		{"-24/1", 0},
	}

	for _, tt := range tests {
		if got := ParseFrameRate(tt.in); got != tt.want {
			t.Errorf("ParseFrameRate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseProbe(t *testing.T) {
	data := []byte(`{
		"streams": [
			{"codec_type": "audio", "codec_name": "aac"},
			{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080,
			 "avg_frame_rate": "0/0", "r_frame_rate": "24000/1001"},
			{"codec_type": "video", "codec_name": "mjpeg", "avg_frame_rate": "90000/1"}
		],
		"format": {"duration": "5400.500000"}
	}`)

	info, err := parseProbe(data)
	if err != nil {
		t.Fatalf("parseProbe failed: %v", err)
	}
	if info.FrameRate != 23.976 {
		t.Errorf("expected 23.976, got %v", info.FrameRate)
	}
	if info.Codec != "h264" || info.Width != 1920 || info.Height != 1080 {
		t.Errorf("unexpected stream info: %+v", info)
	}
	if !info.HasAudio {
		t.Error("expected audio to be detected")
	}
	if want := 5400*time.Second + 500*time.Millisecond; info.Duration != want {
		t.Errorf("expected duration %v, got %v", want, info.Duration)
	}
}

func TestParseProbeNoVideo(t *testing.T) {
	if _, err := parseProbe([]byte(`{"streams": [{"codec_type": "audio"}]}`)); err == nil {
		t.Error("expected error for audio-only input")
	}
	if _, err := parseProbe([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed output")
	}
}
