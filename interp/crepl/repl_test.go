package main

import (
	"bytes"
	"testing"

	"github.com/cerona-lang/cerona/interp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDescribeFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cerona.repl")
	defer teardown()
	//
	ip := interp.New(interp.WithOutput(&bytes.Buffer{}))
	inputs := []string{
		"func add a b\nreturn a + b\nendfunc",
		"func add a b\nreturn a + b\nendfunc", // identical
		"func add a b\nreturn a - b\nendfunc",
	}
	for _, input := range inputs {
		if err := ip.RunSource("input", input); err != nil {
			t.Fatal(err)
		}
	}
	def := ip.Functions().Lookup("add")
	if d := describe(def); d != "add(a, b)  defined at line 1, revision 2" {
		t.Errorf("unexpected description %q", d)
	}
	if err := ip.RunSource("input", "func nop\nendfunc"); err != nil {
		t.Fatal(err)
	}
	if d := describe(ip.Functions().Lookup("nop")); d != "nop()  defined at line 1" {
		t.Errorf("unexpected description %q", d)
	}
}
