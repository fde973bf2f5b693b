package video

import (
	"errors"
	"testing"
)

func TestParseProbeSubtitles(t *testing.T) {
	data := []byte(`{
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "avg_frame_rate": "25/1"},
			{"codec_type": "subtitle", "codec_name": "hdmv_pgs_subtitle", "tags": {"language": "eng"}},
			{"codec_type": "subtitle", "codec_name": "subrip",
			 "tags": {"language": "jpn", "title": "Full"}, "disposition": {"default": 1, "forced": 0}}
		]
	}`)

	info, err := parseProbe(data)
	if err != nil {
		t.Fatalf("parseProbe failed: %v", err)
	}
	if len(info.Subtitles) != 2 {
		t.Fatalf("expected 2 subtitle streams, got %d", len(info.Subtitles))
	}

	pgs, srt := info.Subtitles[0], info.Subtitles[1]
	if pgs.Index != 0 || pgs.TextBased() {
		t.Errorf("unexpected bitmap stream: %+v", pgs)
	}
	if srt.Index != 1 || !srt.TextBased() || !srt.Default || srt.Forced {
		t.Errorf("unexpected text stream: %+v", srt)
	}
	if srt.Language != "jpn" || srt.Title != "Full" {
		t.Errorf("expected jpn/Full, got %s/%s", srt.Language, srt.Title)
	}
}

func TestSelectSubtitle(t *testing.T) {
	streams := []SubtitleStream{
		{Index: 0, Codec: "hdmv_pgs_subtitle", Language: "eng"},
		{Index: 1, Codec: "subrip", Language: "eng"},
		{Index: 2, Codec: "ass", Language: "jpn"},
		{Index: 3, Codec: "subrip", Language: "jpn", Default: true},
	}

	tests := []struct {
		name    string
		lang    string
		want    int
		wantErr bool
	}{
		{"first text stream", "", 3, false},
		{"by language", "en", 1, false},
		{"three letter code", "eng", 1, false},
		{"default wins", "ja", 3, false},
		{"missing language", "fr", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectSubtitle(streams, tt.lang)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got stream %d", got.Index)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Index != tt.want {
				t.Errorf("expected stream %d, got %d", tt.want, got.Index)
			}
		})
	}
}

func TestSelectSubtitleBitmapOnly(t *testing.T) {
	_, err := SelectSubtitle([]SubtitleStream{{Codec: "dvd_subtitle"}}, "")
	if err == nil || err.Error() != "no text subtitle stream (found only dvd_subtitle)" {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := SelectSubtitle(nil, ""); !errors.Is(err, ErrNoSubtitles) {
		t.Errorf("expected ErrNoSubtitles, got %v", err)
	}
}

func TestIsVideoFile(t *testing.T) {
	tests := map[string]bool{
		"movie.mkv":  true,
		"MOVIE.MP4":  true,
		"clip.m2ts":  true,
		"movie.srt":  false,
		"noextvideo": false,
	}
	for path, want := range tests {
		if got := IsVideoFile(path); got != want {
			t.Errorf("IsVideoFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLastLine(t *testing.T) {
	if got := lastLine("a\nb\nStream map '0:s:4' matches no streams.\n"); got != "Stream map '0:s:4' matches no streams." {
		t.Errorf("unexpected last line %q", got)
	}
	if got := lastLine("  "); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}
