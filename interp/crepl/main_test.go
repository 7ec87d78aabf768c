package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cerona-lang/cerona/interp"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func writeProgram(t *testing.T, src string) string {
	name := filepath.Join(t.TempDir(), "test.cer")
	if err := os.WriteFile(name, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestRunFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.repl")
	defer teardown()
	//
	name := writeProgram(t, "set x 5\nif x less 10 then print \"small\"\n")
	var stdout, stderr bytes.Buffer
	if status := runFile(name, false, &stdout, &stderr); status != 0 {
		t.Fatalf("expected status 0, have %d: %s", status, stderr.String())
	}
	if stdout.String() != "small\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestRunFileError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.repl")
	defer teardown()
	//
	name := writeProgram(t, "print 1\ncall nothing\n")
	var stdout, stderr bytes.Buffer
	if status := runFile(name, false, &stdout, &stderr); status != 1 {
		t.Fatalf("expected status 1, have %d", status)
	}
	if stdout.String() != "1\n" {
		t.Errorf("output before the error should remain, have %q", stdout.String())
	}
	expected := name + ":error at line 2: undefined function 'nothing'\n  2 | call nothing\n"
	if stderr.String() != expected {
		t.Errorf("unexpected error output %q", stderr.String())
	}
}

func TestRunFileCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.repl")
	defer teardown()
	//
	name := writeProgram(t, "print 1\nwhile 1 less 2\n")
	var stdout, stderr bytes.Buffer
	if status := runFile(name, true, &stdout, &stderr); status != 1 {
		t.Fatalf("expected status 1, have %d", status)
	}
	if stdout.Len() != 0 {
		t.Errorf("check must not execute the program, have output %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "missing 'endwhile'") {
		t.Errorf("unexpected error output %q", stderr.String())
	}
}

func TestRunMissingFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.repl")
	defer teardown()
	//
	var stdout, stderr bytes.Buffer
	name := filepath.Join(t.TempDir(), "missing.cer")
	if status := runFile(name, false, &stdout, &stderr); status != 2 {
		t.Errorf("expected status 2, have %d", status)
	}
}

func TestConfigure(t *testing.T) {
	conf, err := configure("Error", true)
	if err != nil {
		t.Fatal(err)
	}
	defer gconf.Initialize(testconfig.Conf{})
	teardown := gotestingadapter.QuickConfig(t, "cerona.repl")
	defer teardown()
	//
	if !gconf.GetBool(interp.TraceStatementsKey) {
		t.Errorf("expected statement tracing to be configured globally")
	}
	if conf.GetString("tracelevel.cerona.interp") != "Info" {
		t.Errorf("statement tracing needs level Info for interp, have %q",
			conf.GetString("tracelevel.cerona.interp"))
	}
	if conf.GetString("tracelevel.cerona.expr") != "Error" {
		t.Errorf("expected level Error for expr, have %q", conf.GetString("tracelevel.cerona.expr"))
	}
}
