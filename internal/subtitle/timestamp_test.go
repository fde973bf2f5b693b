package subtitle

import "testing"

func TestDecompose(t *testing.T) {
	tests := []struct {
		name           string
		in             float64
		hh, mm, ss, ms int64
	}{
		{"zero", 0, 0, 0, 0, 0},
		{"negative clamps", -1500, 0, 0, 0, 0},
		{"rounds up at half", 999.5, 0, 0, 1, 0},
		{"rounds down below half", 1000.4, 0, 0, 1, 0},
		{"all fields", 3723004, 1, 2, 3, 4},
		{"past a day", 100 * 3600000, 100, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hh, mm, ss, ms := Decompose(tt.in)
			if hh != tt.hh || mm != tt.mm || ss != tt.ss || ms != tt.ms {
				t.Errorf(
					"Decompose(%v): expected %d:%d:%d.%d, got %d:%d:%d.%d",
					tt.in, tt.hh, tt.mm, tt.ss, tt.ms, hh, mm, ss, ms,
				)
			}
		})
	}
}

func TestFormatCanonical(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00,000"},
		{-3000, "00:00:00,000"},
		{1, "00:00:00,001"},
		{1499.5, "00:00:01,500"},
		{62500, "00:01:02,500"},
		{3723004, "01:02:03,004"},
		{100 * 3600000, "100:00:00,000"},
	}

	for _, tt := range tests {
		if got := FormatCanonical(tt.in); got != tt.want {
			t.Errorf("FormatCanonical(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestParseCanonical(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"00:00:01,000", 1000, true},
		{"1:2:3,4", 3723004, true},
		{"0:75:00,000", 75 * 60000, true},
		{"00:00:01,5", 1005, true},
		{"00:00:01.000", 0, false},
		{"000:00:01,000", 0, false},
		{"00:00:01,0000", 0, false},
		{"", 0, false},
		{" 00:00:01,000", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCanonical(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf(
					"ParseCanonical(%q): expected (%d, %v), got (%d, %v)",
					tt.in, tt.want, tt.wantOK, got, ok,
				)
			}
		})
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	const day = 24 * 3600000
	for v := int64(0); v < day; v += 7919 {
		text := FormatCanonical(float64(v))
		got, ok := ParseCanonical(text)
		if !ok {
			t.Fatalf("ParseCanonical(%q) failed", text)
		}
		if got != v {
			t.Fatalf("round trip of %d: expected %d, got %d (%q)", v, v, got, text)
		}
	}

	last := int64(day - 1)
	if got, _ := ParseCanonical(FormatCanonical(float64(last))); got != last {
		t.Errorf("round trip of %d: got %d", last, got)
	}
}
