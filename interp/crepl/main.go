package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cerona-lang/cerona/interp"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracing keys of all packages, for setting the trace level
var traceKeys = []string{"cerona.scanner", "cerona.runtime", "cerona.expr", "cerona.interp", "cerona.repl"}

// configuration keys for the levels of schuko's global tracers, which are
// created by gconf
var globalTracerKeys = []string{"tracinginterpreter", "tracingcommands", "tracingequations",
	"tracingsyntax", "tracinggraphics", "tracingscripting", "tracingcore", "tracingengine"}

// main() either runs a program file or starts an interactive CLI ("C.REPL"),
// where users may enter Cerona statements.
func main() {
	initDisplay()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	tstmts := flag.Bool("trace-statements", false, "Trace every executed statement")
	check := flag.Bool("check", false, "Only check the block structure of a program")
	flag.Parse()
	// set up logging and configuration
	if _, err := configure(*tlevel, *tstmts); err != nil {
		fmt.Fprintf(os.Stderr, "crepl: %v\n", err)
		os.Exit(3)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	if flag.NArg() > 0 {
		os.Exit(runFile(flag.Arg(0), *check, os.Stdout, os.Stderr))
	}
	if *check {
		fmt.Fprintln(os.Stderr, "usage: crepl -check file")
		os.Exit(2)
	}
	//
	// set up REPL
	repl, err := newSession()
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to Cerona") // colored welcome message
	tracer().Infof("Quit with <ctrl>D or :quit")
	repl.REPL()
}

// runFile loads and runs a program file, returning the exit status.
func runFile(filename string, checkOnly bool, stdout, stderr io.Writer) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(stderr, "%s: error: %v\n", filename, err)
		return 2
	}
	prog, err := interp.Load(filename, string(src))
	if err == nil && checkOnly {
		err = prog.Check()
	}
	if err == nil && !checkOnly {
		ip := interp.New(interp.WithName(filename), interp.WithOutput(stdout))
		err = ip.Run(prog)
	}
	if err != nil {
		fmt.Fprint(stderr, render(filename, err))
		return 1
	}
	return 0
}

// render formats an error for display.
func render(name string, err error) string {
	var e *interp.Error
	if errors.As(err, &e) {
		return e.Render(name)
	}
	return fmt.Sprintf("%s:error: %v\n", name, err)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// configure sets up tracing to the Go log package and installs the global
// configuration. Every package traces at the given level. Tracing of
// statements needs at least level Info for package interp.
func configure(level string, traceStatements bool) (schuko.Configuration, error) {
	conf := testconfig.Conf{
		"tracing.adapter":         "go",
		"tracelevel.root":         level,
		interp.TraceStatementsKey: traceStatements,
	}
	for _, key := range traceKeys {
		conf["tracelevel."+key] = level
	}
	for _, key := range globalTracerKeys {
		conf[key] = "Error"
	}
	if traceStatements && tracing.TraceLevelFromString(level) == tracing.LevelError {
		conf["tracelevel.cerona.interp"] = "Info"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return nil, err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	gconf.Initialize(conf)
	return conf, nil
}
