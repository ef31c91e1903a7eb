package main

import (
	"fmt"
	"strings"

	"dntk/internal/bc"
)

var commandHelp = map[string]string{
	"bye":    "Exit from dntk",
	"quit":   "Exit from dntk",
	"config": "Print the current configuration",
	"funcs":  "List the user defined functions",
	"help":   "Print this list, or help on one command",
	"stats":  "Toggle printing execution statistics after each statement",
	"trace":  "Toggle tracing: trace vars, trace exec or trace dump",
	"limits": "Print the bc limits",
	"@":      "Reset the interpreter, forgetting variables and functions",
}

var commandOrder = []string{
	"bye", "config", "funcs", "help", "limits", "quit", "stats", "trace", "@",
}

func executeHelp(args []string) {

	if len(args) == 0 {
		for _, cmd := range commandOrder {
			fmt.Fprintf(g.out, "%-8s %s\n", cmd, commandHelp[cmd])
		}

		fmt.Fprintln(g.out)
		fmt.Fprintln(g.out, "Builtin functions:")
		fmt.Fprintln(g.out, strings.Join(bc.Builtins(), " "))
		return
	}

	for _, arg := range args {
		if text, ok := commandHelp[arg]; ok {
			fmt.Fprintln(g.out, text)
		} else {
			fmt.Fprintf(g.out, EUNKNOWNHELP+"\n", arg)
		}
	}
}
