package cli

import (
	"flag"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func newTestContext(args []string) *cli.Context {
	app := &cli.App{Flags: GlobalFlags}
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range GlobalFlags {
		_ = f.Apply(set)
	}
	_ = set.Parse(args)
	return cli.NewContext(app, set, nil)
}

func TestGlobalFlags_Defaults(t *testing.T) {
	c := newTestContext(nil)

	if c.String("device") != "" {
		t.Errorf("device default must be empty, got %q", c.String("device"))
	}
	if c.String("adb-path") != "" {
		t.Errorf("adb-path default must be empty, got %q", c.String("adb-path"))
	}
	if c.Bool("verbose") {
		t.Error("verbose must default to false")
	}
}

func TestGlobalFlags_Parse(t *testing.T) {
	c := newTestContext([]string{
		"--device", "emulator-5554",
		"--adb-path", "/opt/adb",
		"--verbose",
	})

	if c.String("device") != "emulator-5554" {
		t.Errorf("got device %q", c.String("device"))
	}
	if c.String("adb-path") != "/opt/adb" {
		t.Errorf("got adb-path %q", c.String("adb-path"))
	}
	if !c.Bool("verbose") {
		t.Error("verbose not parsed")
	}
}

func TestCommands_Registered(t *testing.T) {
	commands := []*cli.Command{tapCommand, textCommand, dumpCommand, watchCommand}
	names := map[string]bool{}
	for _, cmd := range commands {
		if cmd.Action == nil {
			t.Errorf("command %s has no action", cmd.Name)
		}
		names[cmd.Name] = true
	}
	for _, want := range []string{"tap", "text", "dump", "watch"} {
		if !names[want] {
			t.Errorf("command %s not registered", want)
		}
	}
}

func TestRunTap_RequiresQuery(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	_ = set.Parse(nil) // no positional args
	c := cli.NewContext(&cli.App{}, set, nil)

	err := runTap(c)
	if err == nil {
		t.Fatal("expected usage error for missing description")
	}
	if !strings.Contains(err.Error(), "usage") {
		t.Errorf("got %v, want a usage error", err)
	}
}
