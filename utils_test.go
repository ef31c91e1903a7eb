package main

import (
	"testing"
)

func TestWrapResult(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"12345", 80, "12345"},
		{"1234", 5, "1234"},
		{"12345", 5, "1234\\\n5"},
		{"1234567890", 5, "1234\\\n5678\\\n90"},
		{"12345678", 5, "1234\\\n5678"},
		{"123456", 0, "123456"},
		{"123456", 1, "123456"},
		{"12\n123456", 5, "12\n1234\\\n56"},
	}

	for _, tc := range cases {
		if got := wrapResult(tc.in, tc.width); got != tc.want {
			t.Errorf("wrapResult(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}

func TestPluralize(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "statements"},
		{1, "statement"},
		{2, "statements"},
	}

	for _, tc := range cases {
		if got := pluralize("statement", tc.n); got != tc.want {
			t.Errorf("pluralize(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestFormatCPUTime(t *testing.T) {
	cases := map[int64]string{
		0:     "00:00:00",
		59:    "00:00:59",
		61:    "00:01:01",
		3600:  "01:00:00",
		86399: "23:59:59",
	}

	for in, want := range cases {
		if got := formatCPUTime(in); got != want {
			t.Errorf("formatCPUTime(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseProcStat(t *testing.T) {
	line := "1234 (my calc) S 1 2 3 4 5 6 7 8 9 10 250 120 0 0 20 0"

	utime, stime := parseProcStat(line, 100)
	if utime != 2 || stime != 1 {
		t.Fatalf("parseProcStat = %d, %d, want 2, 1", utime, stime)
	}

	if u, s := parseProcStat("1 (x) S 1 2", 100); u != 0 || s != 0 {
		t.Fatalf("short stat line = %d, %d", u, s)
	}
}

func TestConvertToMB(t *testing.T) {
	if got := convertToMB(5 * 1024 * 1024); got != 5 {
		t.Fatalf("convertToMB = %d", got)
	}
}

func TestSwitchSetting(t *testing.T) {
	if switchSetting(true) != "ON" || switchSetting(false) != "OFF" {
		t.Fatal("switchSetting")
	}
}

func TestColorize(t *testing.T) {
	saved := g
	defer func() { g = saved }()

	g.interactive = true
	g.cfg.White = false
	if got := colorize("x", colorCyanSeq); got != colorCyanSeq+"x"+colorResetSeq {
		t.Fatalf("colorize = %q", got)
	}

	g.cfg.White = true
	if got := colorize("x", colorCyanSeq); got != "x" {
		t.Fatalf("colorize with white = %q", got)
	}

	g.cfg.White = false
	g.interactive = false
	if got := colorize("x", colorCyanSeq); got != "x" {
		t.Fatalf("colorize when not interactive = %q", got)
	}
}
