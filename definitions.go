package main

import (
	"io"
	"time"

	"dntk/internal/bc"

	"github.com/danswartzendruber/liner"
)

//
// Constants
//

const VERSION = "3.0.0"

const myPrompt = "(dntk): "

const defaultWindowCols = 80

const historyFileName = "history"
const configFileName = "config.yaml"
const configDirName = "dntk"

const dirPerm = 0755
const filePerm = 0644

const colorCyanSeq = "\033[36m"
const colorMagentaSeq = "\033[35m"
const colorYellowSeq = "\033[33m"
const colorResetSeq = "\033[0m"

//
// Type definitions
//

type window struct {
	rows int
	cols int
}

//
// Global variables
//

var buildTimestampStr string

//
// This structure contains the state of the session
//

var g struct {
	executor    *bc.Executor
	parserLiner *liner.State
	out         io.Writer
	cfg         config
	configFile  string
	historyFile string
	history     []string
	window      window
	exiting     bool
	interactive bool
	printStats  bool
}

//
// Runtime statistics
//

var s struct {
	elapsed       time.Time
	utime         int64
	stime         int64
	numStatements int64
}
