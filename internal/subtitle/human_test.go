package subtitle

import "testing"

func TestParseFreeform(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"1500", 1500},
		{"-1500", -1500},
		{"0", 0},
		{"1:30", 90000},
		{"1:30.5", 90500},
		{"-1:30.5", -90500},
		{"1:02:03.004", 3723004},
		{"1.5", 1500},
		{".25", 250},
		{"1:", 60000},
		{":::", 0},
		{"-:::.", 0},
		{"abc:10", 10000},
		{"1:2:3:4", 7384000},
		{"garbage", 0},
		{"12abc", 12000},
		{"0.0005", 1},
		{"99999999999999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFreeform(tt.in); got != tt.want {
				t.Errorf("ParseFreeform(%q): expected %d, got %d", tt.in, tt.want, got)
			}
		})
	}
}

func TestFormatHuman(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, ""},
		{500, ""},
		{-500, ""},
		{999, ""},
		{1000, "1s"},
		{1500, "1s 500ms"},
		{-61000, "–1m 1s"},
		{60000, "1m"},
		{3723004, "1h 2m 3s 4ms"},
		{3600005, "1h 5ms"},
		{-7200000, "–2h"},
	}

	for _, tt := range tests {
		if got := FormatHuman(tt.in); got != tt.want {
			t.Errorf("FormatHuman(%d): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatSignedMs(t *testing.T) {
	if got := FormatSignedMs(-1500); got != "–1500ms" {
		t.Errorf("expected %q, got %q", "–1500ms", got)
	}
	if got := FormatSignedMs(250); got != "250ms" {
		t.Errorf("expected %q, got %q", "250ms", got)
	}
}

func TestFreeformHumanRoundTrip(t *testing.T) {
	for _, in := range []string{"1:30.5", "-0:01:01", "3723004", "-45000"} {
		ms := ParseFreeform(in)
		human := FormatHuman(ms)
		if human == "" {
			t.Errorf("FormatHuman(%d) for %q: expected non-empty", ms, in)
		}
	}
}
