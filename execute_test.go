package main

import (
	"bytes"
	"strings"
	"testing"

	"dntk/internal/bc"
)

//
// Point the session at a buffer, and put everything back when the
// test is done
//

func setupSession(t *testing.T) *bytes.Buffer {
	t.Helper()

	saved, savedStats := g, s
	t.Cleanup(func() {
		g, s = saved, savedStats
	})

	var buf bytes.Buffer

	g.out = &buf
	g.cfg = defaultConfig()
	g.interactive = false
	g.printStats = false
	g.exiting = false
	g.history = nil
	g.configFile = ""
	g.historyFile = ""
	g.window.cols = 0
	g.executor = newExecutor(g.cfg.Scale)
	s.numStatements = 0

	return &buf
}

func TestRunPipe(t *testing.T) {
	buf := setupSession(t)

	input := "1+1\n\n   \nx = 3\nx * 2\nzz + 1\nscale = 2; 1/3\n"

	if failures := runPipe(strings.NewReader(input)); failures != 1 {
		t.Fatalf("runPipe failures = %d, want 1", failures)
	}

	want := "2\n3\n6\nUndefined identifier: zz\n.33\n"
	if got := buf.String(); got != want {
		t.Fatalf("runPipe output = %q, want %q", got, want)
	}

	if s.numStatements != 5 {
		t.Fatalf("numStatements = %d, want 5", s.numStatements)
	}
}

func TestRunPipeIgnoresCommands(t *testing.T) {
	buf := setupSession(t)

	if failures := runPipe(strings.NewReader("quit\n")); failures != 1 {
		t.Fatalf("runPipe(quit) failures = %d, want 1", failures)
	}
	if g.exiting {
		t.Fatal("quit was treated as a command when piped")
	}
	if !strings.Contains(buf.String(), "quit") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestEvalLineInteractive(t *testing.T) {
	buf := setupSession(t)

	g.interactive = true
	g.cfg.White = true

	if !evalLine("  2^10  ") {
		t.Fatal("evalLine(2^10) failed")
	}
	if got, want := buf.String(), myPrompt+"2^10 = 1024\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}

	buf.Reset()
	if evalLine("1/0") {
		t.Fatal("evalLine(1/0) succeeded")
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 || lines[0] != myPrompt+"1/0" {
		t.Fatalf("error output = %q", buf.String())
	}
}

func TestEvalLineColor(t *testing.T) {
	buf := setupSession(t)

	g.interactive = true

	evalLine("1+2")
	if got, want := buf.String(), colorCyanSeq+myPrompt+"1+2 = 3"+colorResetSeq+"\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}

	buf.Reset()
	evalLine("nope(1)")
	if !strings.HasPrefix(buf.String(), colorMagentaSeq) {
		t.Fatalf("error output = %q", buf.String())
	}
}

func TestEvalLineWraps(t *testing.T) {
	buf := setupSession(t)

	g.window.cols = 10

	evalLine("2^64")
	if got, want := buf.String(), "184467440\\\n737095516\\\n16\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestExecuteCommand(t *testing.T) {
	cases := []struct {
		line    string
		handled bool
	}{
		{"", false},
		{"1+1", false},
		{"stats + 1", false},
		{"quit now", false},
		{"trace", false},
		{"funcs", true},
		{"help", true},
		{"help trace", true},
		{"config", true},
		{"trace vars", true},
		{"@", true},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			setupSession(t)
			if got := executeCommand(tc.line); got != tc.handled {
				t.Fatalf("executeCommand(%q) = %v, want %v", tc.line, got, tc.handled)
			}
		})
	}
}

func TestExecuteBye(t *testing.T) {
	for _, cmd := range []string{"quit", "bye", "  bye  "} {
		setupSession(t)
		if !executeCommand(cmd) || !g.exiting {
			t.Fatalf("%q did not exit", cmd)
		}
	}
}

func TestExecuteTrace(t *testing.T) {
	buf := setupSession(t)

	executeCommand("trace vars")
	executeCommand("trace exec")
	executeCommand("trace dump")

	if got := g.executor.TraceFlags(); got != (bc.Trace{Vars: true, Exec: true, Dump: true}) {
		t.Fatalf("trace flags = %+v", got)
	}

	executeCommand("trace exec")
	if got := g.executor.TraceFlags(); got.Exec {
		t.Fatalf("trace exec did not toggle off: %+v", got)
	}

	want := "toggling traceVars ON\ntoggling traceExec ON\ntoggling traceDump ON\ntoggling traceExec OFF\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	executeCommand("trace everything")
	if !strings.Contains(buf.String(), `"everything"`) {
		t.Fatalf("unknown trace output = %q", buf.String())
	}
}

func TestExecuteStats(t *testing.T) {
	buf := setupSession(t)

	executeCommand("stats")
	if !g.printStats || buf.String() != "toggling printStats ON\n" {
		t.Fatalf("stats on: %v %q", g.printStats, buf.String())
	}

	executeCommand("stats")
	if g.printStats {
		t.Fatal("stats did not toggle off")
	}
}

func TestPrintStatistics(t *testing.T) {
	buf := setupSession(t)

	initClock()
	g.printStats = true
	s.numStatements = 1234

	printStatistics()

	out := buf.String()
	for _, want := range []string{"CPU Usage: elapsed = ", "MB memory used\n", "1,234 statements executed\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("statistics %q missing %q", out, want)
		}
	}
}

func TestExecuteFuncsAndReset(t *testing.T) {
	buf := setupSession(t)

	executeFuncs()
	if buf.String() != "No user functions defined\n" {
		t.Fatalf("funcs with none = %q", buf.String())
	}

	evalLine("define sq(x) { return x*x }")
	evalLine("define cube(x) { return x*x*x }")
	evalLine("v = 9")
	executeCommand("trace vars")

	buf.Reset()
	executeFuncs()
	if buf.String() != "cube\nsq\n" {
		t.Fatalf("funcs = %q", buf.String())
	}

	executeCommand("@")

	if got := g.executor.Functions(); len(got) != 0 {
		t.Fatalf("functions after reset = %q", got)
	}
	if _, err := g.executor.Exec("v"); err == nil {
		t.Fatal("variable survived reset")
	}
	if !g.executor.TraceFlags().Vars {
		t.Fatal("trace flags lost on reset")
	}
}

func TestExecuteConfig(t *testing.T) {
	buf := setupSession(t)

	g.historyFile = "/tmp/hist"
	g.history = []string{"1+1"}
	evalLine("scale = 4")

	executeConfig()

	out := buf.String()
	for _, want := range []string{"scale = 4\n", "obase = 10\n", "Statistics OFF\n", "History file /tmp/hist (1 line)\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config %q missing %q", out, want)
		}
	}
}

func TestExecuteHelp(t *testing.T) {
	buf := setupSession(t)

	executeHelp(nil)
	out := buf.String()
	for _, want := range []string{"quit", "trace", "Builtin functions:", "sqrt"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help %q missing %q", out, want)
		}
	}

	buf.Reset()
	executeHelp([]string{"stats", "frobnicate"})
	if got := buf.String(); got != commandHelp["stats"]+"\nNo help for \"frobnicate\"\n" {
		t.Fatalf("help stats = %q", got)
	}
}
