package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"dntk/internal/bc"

	"fortio.org/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/alecthomas/kingpin.v2"
)

//
// Command line options.  The ones that can also come from the config
// file are in overrides, so we know whether they were given
//

type options struct {
	overrides  cliOverrides
	showLimits bool
	inject     string
	once       bool
	verbose    bool
	configFile string
}

func parseOptions(args []string) (*options, error) {

	opts := &options{}

	app := kingpin.New("dntk", "An interactive, bc compatible arbitrary precision calculator")

	app.Version(versionString())
	app.HelpFlag.Short('h')

	app.Flag("scale", "Number of fractional digits in results").
		Short('s').PlaceHolder("20").SetValue(&opts.overrides.scale)
	app.Flag("white", "Do not color the output").
		Short('w').SetValue(&opts.overrides.white)
	app.Flag("quiet", "Do not print the banner").
		Short('q').SetValue(&opts.overrides.quiet)
	app.Flag("stats", "Print execution statistics after each statement").
		SetValue(&opts.overrides.stats)
	app.Flag("history", "History file").
		PlaceHolder("FILE").SetValue(&opts.overrides.history)
	app.Flag("show-limits", "Print the bc limits and exit").
		BoolVar(&opts.showLimits)
	app.Flag("inject", "Evaluate a statement before reading input").
		Short('i').PlaceHolder("STMT").StringVar(&opts.inject)
	app.Flag("once", "Exit after the injected statement").
		BoolVar(&opts.once)
	app.Flag("verbose", "Verbose logging").
		BoolVar(&opts.verbose)
	app.Flag("config", "Config file").
		PlaceHolder("FILE").StringVar(&opts.configFile)

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}

	return opts, nil
}

func main() {

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		kingpin.Fatalf("%v, try --help", err)
	}

	g.out = os.Stdout

	if opts.verbose {
		log.SetLogLevel(log.Verbose)
	}

	if opts.showLimits {
		fmt.Fprintln(g.out, bc.Limits())
		return
	}

	g.configFile = configPath(opts.configFile)

	cfg, err := loadConfig(g.configFile)
	if err != nil {
		log.Warnf(EBADCONFIG, g.configFile, err)
	}

	g.cfg = opts.overrides.merge(cfg)
	g.printStats = g.cfg.Stats
	g.interactive = checkTerminal()

	g.executor = newExecutor(g.cfg.Scale)

	initClock()

	//
	// Run the signal handling code in a goroutine
	//

	go sigHdlr()

	if !g.interactive {
		if opts.inject != "" && !evalLine(opts.inject) && opts.once {
			os.Exit(1)
		}

		if opts.once {
			return
		}

		if runPipe(os.Stdin) > 0 {
			os.Exit(1)
		}
		return
	}

	setupWindow()

	g.historyFile = historyPath(g.cfg.History)
	if g.history, err = loadHistory(g.historyFile); err != nil {
		log.Warnf(EBADHISTORY, g.historyFile, err)
	}

	if !g.cfg.Quiet {
		printVersionInfo()
	}

	if opts.inject != "" {
		evalLine(opts.inject)
		printStatistics()

		if opts.once {
			return
		}
	}

	//
	// We need to close the Liner instance before exiting, to make
	// sure we end up back in normal (cooked) terminal mode
	//

	g.parserLiner = setupLiner()

	defer func() {
		cleanupLiner(&g.parserLiner)
	}()

	for !g.exiting {
		line, eof := readLine(g.parserLiner, myPrompt)
		if eof {
			break
		}

		if executeCommand(line) {
			continue
		}

		if line == "" {
			continue
		}

		evalLine(line)
		printStatistics()
	}

	saveSession()
}

//
// Write the history back.  Called on every way out of an
// interactive session
//

func saveSession() {

	if !g.interactive {
		return
	}

	if err := saveHistory(g.historyFile, g.history); err != nil {
		log.Warnf(ESAVEHISTORY, g.historyFile, err)
	}
}

func writeGoroutineStacks() {

	name := "goroutines-stacks"
	mode := (os.O_CREATE | os.O_WRONLY)

	dumpFile, err := os.OpenFile(name, mode, filePerm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open %s (%v)\n", name, err)
		return
	}

	_ = pprof.Lookup("goroutine").WriteTo(dumpFile, 2)

	m := fmt.Sprintf("Dumping goroutine stacks to %v and exiting", name)

	crash(m)
}

func sigHdlr() {

	ch := make(chan os.Signal, 1)

	signal.Ignore(syscall.SIGTSTP)

	signal.Notify(ch, syscall.SIGQUIT)
	signal.Notify(ch, syscall.SIGINT)
	signal.Notify(ch, syscall.SIGWINCH)

	for {
		sig := <-ch

		switch sig {

		default:
			crash(fmt.Sprintf(EUNEXPECTEDSIGNO, sig))

		case syscall.SIGWINCH:
			setupWindow()

		case syscall.SIGQUIT:
			writeGoroutineStacks() // does not return

		case syscall.SIGINT:
			saveSession()
			crash(EINTERRUPTED)
		}
	}
}

func statsPrinter() *message.Printer {

	return message.NewPrinter(language.English)
}

func versionString() string {

	if buildTimestampStr == "" {
		return VERSION
	}

	return fmt.Sprintf("%s - built %s", VERSION, buildTimestampStr)
}

func printVersionInfo() {

	fmt.Fprintln(g.out, colorize("dntk version "+versionString(), colorYellowSeq))
}
