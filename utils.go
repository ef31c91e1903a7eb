package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"fortio.org/log"
	"github.com/danswartzendruber/liner"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"
)

//
// Are we talking to a person?  Line editing only makes sense when
// both ends are a terminal
//

func checkTerminal() bool {

	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

//
// Read terminal geometry.  Output is wrapped to the width, so fall
// back to something sane if we can't get it
//

func setupWindow() {

	var err error

	g.window.cols, g.window.rows, err = term.GetSize(int(os.Stdout.Fd()))
	if err != nil || g.window.cols <= 0 {
		g.window.cols = defaultWindowCols
	}
}

func setupLiner() *liner.State {

	l := liner.NewLiner()

	l.SetMultiLineMode(false)

	for _, h := range g.history {
		l.AppendHistory(h)
	}

	return l
}

//
// Restore terminal state.  NB: we cannot call (or cause to be
// called) crash(), as that would recurse
//

func cleanupLiner(linerState **liner.State) {

	if *linerState != nil {
		(*linerState).Close()
		*linerState = nil
	}
}

//
// Read a line from the terminal, with editing and history.  The
// second value is true at end of input
//

func readLine(l *liner.State, prompt string) (string, bool) {

	s, err := l.Prompt(prompt)

	//
	// A non-nil error here can be totally okay: ^D at the start of
	// the line is EOF, and ^C just abandons the line
	//

	if err != nil {
		switch {
		default:
			crash(fmt.Sprintf(EREADLINE, err))

		case errors.Is(err, io.EOF):
			return "", true

		case errors.Is(err, liner.ErrPromptAborted):
			return "", false

		case errors.Is(err, liner.ErrTimedOut):
			log.Warnf(ETIMEOUT)
			return "", false
		}
	}

	if line := strings.TrimSpace(s); line != "" {
		if n := len(g.history); n == 0 || g.history[n-1] != line {
			l.AppendHistory(line)
		}
		g.history = appendHistory(g.history, line)
	}

	return s, false
}

func colorize(str, esc string) string {

	if g.cfg.White || !g.interactive {
		return str
	}

	return esc + str + colorResetSeq
}

//
// Break a long result the way bc does: continued lines end in a
// backslash, and no line is wider than the window.  Results that
// already span lines (limits, matrices) are wrapped line by line
//

func wrapResult(str string, width int) string {

	if width < 2 {
		return str
	}

	if strings.Contains(str, "\n") {
		lines := strings.Split(str, "\n")
		for i, line := range lines {
			lines[i] = wrapResult(line, width)
		}
		return strings.Join(lines, "\n")
	}

	if len(str) < width {
		return str
	}

	var sb strings.Builder

	chunk := width - 1
	for len(str) > chunk {
		sb.WriteString(str[:chunk])
		sb.WriteString("\\\n")
		str = str[chunk:]
	}
	sb.WriteString(str)

	return sb.String()
}

func pluralize(str string, num int64) string {

	//
	// Oddity: 0 is considered plural
	//

	if num != 1 {
		return str + "s"
	}

	return str
}

func switchSetting(b bool) string {

	if b {
		return "ON"
	} else {
		return "OFF"
	}
}

func convertToMB(num uint64) uint64 {

	return num / (1024 * 1024)
}

//
// Initialize the clock
//

func initClock() {

	s.elapsed = time.Now()
	s.utime, s.stime = getCPUInfo(1)
}

func printCpuUsage() {

	elapsed := time.Since(s.elapsed)
	utime, stime := getCPUInfo(1)

	fmt.Fprintf(g.out, "CPU Usage: elapsed = %s / user = %s / system = %s\n",
		formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-s.utime), formatCPUTime(stime-s.stime))
}

func formatCPUTime(secs int64) string {

	d := time.Duration(secs) * time.Second

	h := int64(d / time.Hour)
	m := int64(d%time.Hour) / int64(time.Minute)
	sec := int64(d%time.Minute) / int64(time.Second)

	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

//
// User and system seconds from /proc/self/stat.  Zero on systems
// without procfs
//

func getCPUInfo(divisor int64) (int64, int64) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clktck <= 0 {
		log.LogVf(ECPUINFO, err)
		return 0, 0
	}

	clktck /= divisor

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		log.LogVf(ECPUINFO, err)
		return 0, 0
	}

	return parseProcStat(string(contents), clktck)
}

//
// Fields 14 and 15 (utime, stime) of a /proc/<pid>/stat line, in
// seconds
//

func parseProcStat(contents string, clktck int64) (int64, int64) {

	//
	// The command name is in parens and may hold spaces, so count
	// fields from the closing paren
	//

	if i := strings.LastIndexByte(contents, ')'); i >= 0 {
		contents = "pid (comm" + contents[i:]
	}

	fields := strings.Fields(contents)
	if len(fields) < 15 || clktck <= 0 {
		return 0, 0
	}

	utime, err := strconv.ParseInt(fields[13], 10, 64)
	if err != nil {
		return 0, 0
	}

	stime, err := strconv.ParseInt(fields[14], 10, 64)
	if err != nil {
		return 0, 0
	}

	return utime / clktck, stime / clktck
}

//
// Fatal error: restore the terminal, report on standard error and
// exit.  Standard output may be a pipe someone else is reading, so
// the message goes to a duplicate of stderr opened before we close
// both
//

func crash(msg string) {

	cleanupLiner(&g.parserLiner)

	if msg == "" {
		os.Exit(1)
	}

	w := os.Stderr

	if fd, err := syscall.Dup(int(os.Stderr.Fd())); err == nil {
		w = os.NewFile(uintptr(fd), "dntk stderr")
		os.Stdout.Close()
		os.Stderr.Close()
	}

	fmt.Fprintln(w, colorize(msg, colorMagentaSeq))

	os.Exit(1)
}
