package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"dntk/internal/bc"

	"fortio.org/log"
)

//
// Front-end commands.  They are only recognized when they make up
// the whole line, so a variable named stats is still usable in an
// expression
//

func executeCommand(line string) bool {

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	default:
		return false

	case "quit", "bye":
		if len(fields) != 1 {
			return false
		}
		executeBye()

	case "help":
		executeHelp(fields[1:])

	case "config":
		if len(fields) != 1 {
			return false
		}
		executeConfig()

	case "funcs":
		if len(fields) != 1 {
			return false
		}
		executeFuncs()

	case "stats":
		if len(fields) != 1 {
			return false
		}
		executeStats()

	case "trace":
		if len(fields) != 2 {
			return false
		}
		executeTrace(fields[1])

	case "@":
		if len(fields) != 1 {
			return false
		}
		executeReset()
	}

	return true
}

func executeBye() {

	g.exiting = true
}

func executeConfig() {

	fmt.Fprintf(g.out, "scale = %d\n", g.executor.Scale())
	fmt.Fprintf(g.out, "obase = %d\n", g.executor.Obase())
	fmt.Fprintf(g.out, "Color output %s\n", switchSetting(!g.cfg.White))
	fmt.Fprintf(g.out, "Statistics %s\n", switchSetting(g.printStats))

	if g.configFile != "" {
		fmt.Fprintf(g.out, "Config file %s\n", g.configFile)
	}

	if g.historyFile != "" {
		fmt.Fprintf(g.out, "History file %s (%d %s)\n", g.historyFile,
			len(g.history), pluralize("line", int64(len(g.history))))
	}
}

func executeFuncs() {

	names := g.executor.Functions()

	if len(names) == 0 {
		fmt.Fprintln(g.out, "No user functions defined")
		return
	}

	for _, name := range names {
		fmt.Fprintln(g.out, name)
	}
}

func executeStats() {

	g.printStats = !g.printStats

	fmt.Fprintf(g.out, "toggling printStats %s\n", switchSetting(g.printStats))
}

func executeTrace(what string) {

	t := g.executor.TraceFlags()

	switch what {
	default:
		fmt.Fprintf(g.out, EUNKNOWNTRACE+"\n", what)
		return

	case "vars":
		t.Vars = !t.Vars
		fmt.Fprintf(g.out, "toggling traceVars %s\n", switchSetting(t.Vars))

	case "exec":
		t.Exec = !t.Exec
		fmt.Fprintf(g.out, "toggling traceExec %s\n", switchSetting(t.Exec))

	case "dump":
		t.Dump = !t.Dump
		fmt.Fprintf(g.out, "toggling traceDump %s\n", switchSetting(t.Dump))
	}

	g.executor.SetTrace(t)
}

//
// Throw away every variable and function.  The trace switches
// survive, since they belong to the session and not the program
//

func executeReset() {

	t := g.executor.TraceFlags()

	g.executor = newExecutor(g.cfg.Scale)
	g.executor.SetTrace(t)

	fmt.Fprintln(g.out, "Interpreter reset")
}

func newExecutor(scale uint32) *bc.Executor {

	e := bc.New(scale)

	e.SetTraceOutput(g.out)

	return e
}

//
// Evaluate one line of input and report it.  Returns false if the
// line failed
//

func evalLine(line string) bool {

	stmt := strings.TrimSpace(line)

	result, err := g.executor.Exec(stmt)

	s.numStatements++

	switch {
	default:
		log.LogVf("error on %q: %v", stmt, err)
		printError(stmt, err)
		return false

	case err == nil:
		printResult(stmt, result)

	case errors.Is(err, bc.ErrNoResult):
		// definitions and the like
	}

	return true
}

func printResult(stmt, result string) {

	result = wrapResult(result, g.window.cols)

	if g.interactive {
		fmt.Fprintln(g.out, colorize(myPrompt+stmt+" = "+result, colorCyanSeq))
	} else {
		fmt.Fprintln(g.out, result)
	}
}

func printError(stmt string, err error) {

	if g.interactive {
		fmt.Fprintln(g.out, colorize(myPrompt+stmt, colorMagentaSeq))
		fmt.Fprintln(g.out, colorize(err.Error(), colorMagentaSeq))
	} else {
		fmt.Fprintln(g.out, err.Error())
	}
}

//
// Used when standard input is not a terminal.  Every line is a
// statement; commands are not recognized.  Returns the number of
// lines that failed
//

func runPipe(r io.Reader) int {

	failures := 0

	lines, err := io.ReadAll(r)
	if err != nil {
		log.Warnf(EREADLINE, err)
		return 1
	}

	for _, line := range strings.Split(string(lines), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !evalLine(line) {
			failures++
		}
	}

	printStatistics()

	return failures
}

func printStatistics() {

	var mem runtime.MemStats

	if g.printStats {
		printCpuUsage()
		runtime.GC()
		runtime.ReadMemStats(&mem)
		p := statsPrinter()
		p.Fprintf(g.out, "%dMB memory used\n", convertToMB(mem.HeapAlloc))
		p.Fprintf(g.out, "%d %s executed\n", s.numStatements,
			pluralize("statement", s.numStatements))
	}
}
