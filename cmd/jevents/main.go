// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jevents prints the parse events for JSON or YAML input, one line
// per event.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jinto"
	"github.com/creachadair/jinto/gojson"
	"github.com/creachadair/jinto/trace"
	"github.com/creachadair/jinto/yamlsrc"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

// Config holds the settings for the jevents command.
type Config struct {
	Source   string `cli:"name=src desc='input source: json, gojson, or yaml' default=json"`
	Comments bool   `cli:"name=c desc='allow comments in JSON input'"`
	Trailing bool   `cli:"name=tc desc='allow trailing commas in JSON input'"`
	Frag     int    `cli:"name=frag desc='split text into fragments of at most this size'"`
	Color    bool   `cli:"name=color desc='color the output (default: if a terminal)'"`

	Main *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &Config{Source: "json"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "jevents").
		WithSynopsis("jevents [opts] [files]").
		WithDescription("Print the parse events for JSON or YAML input, one per line.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

func run(cfg *Config, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	h := trace.New(cc.Out)
	h.SetColor(cfg.useColor(cc.Out))

	if len(args) == 0 {
		return cfg.parse(cc.In, h)
	}
	for _, path := range args {
		if err := cfg.parseFile(path, cc.In, h); err != nil {
			return err
		}
	}
	return nil
}

// useColor reports whether output to w should be colored. An explicit -color
// flag wins; otherwise color is used when w is a terminal.
func (cfg *Config) useColor(w io.Writer) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return cfg.Color
		}
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (cfg *Config) parseFile(path string, stdin io.Reader, h jinto.Handler) error {
	if path == "-" {
		return cfg.parse(stdin, h)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()
	if err := cfg.parse(f, h); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (cfg *Config) parse(r io.Reader, h jinto.Handler) error {
	switch cfg.Source {
	case "", "json":
		st := jinto.NewStream(r)
		st.AllowComments(cfg.Comments)
		st.AllowTrailingCommas(cfg.Trailing)
		st.SetFragmentSize(cfg.Frag)
		return st.Parse(h)
	case "gojson":
		if cfg.Comments || cfg.Trailing || cfg.Frag > 0 {
			return fmt.Errorf("%w: -c, -tc, and -frag require -src json", cli.ErrUsage)
		}
		return gojson.NewSource(r).Parse(h)
	case "yaml":
		return yamlsrc.Parse(r, h)
	}
	return fmt.Errorf("%w: unknown source %q", cli.ErrUsage, cfg.Source)
}
