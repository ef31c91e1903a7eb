package main

//
// Manifest constants for the front-end messages
//

const (
	EINTERRUPTED     = "Interrupted"
	EREADLINE        = "readLine error: %q"
	ETIMEOUT         = "Timed out waiting for input"
	EBADCONFIG       = "Ignoring config file %s: %v"
	EBADHISTORY      = "Unable to read history file %s: %v"
	ESAVEHISTORY     = "Unable to save history file %s: %v"
	EBADSETTING      = "invalid value %q for %s"
	EUNKNOWNTRACE    = "Unknown trace option %q (expected vars, exec or dump)"
	EUNKNOWNHELP     = "No help for %q"
	ECPUINFO         = "Unable to read CPU usage: %v"
	EUNEXPECTEDSIGNO = "Unexpected signal %d"
)
