// Command jsift extracts elements from a JSON document and reduces them to
// a chosen set of fields, without ever loading the whole document.
//
//	# pull the id and first name out of every record of a response
//	jsift -p 'response[*]' -f personid -f 'personBasic.names[*].firstName' < response.json
//
//	# same pipeline, described in a config file
//	jsift -c pipeline.yaml response.json
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/davrell/jsonsift"
	"github.com/davrell/jsonsift/config"
	"github.com/davrell/jsonsift/derive"
	"github.com/davrell/jsonsift/encoding/json"
	"github.com/davrell/jsonsift/internal/format"
	"github.com/davrell/jsonsift/token"
)

type options struct {
	configFile string
	path       string
	fields     []string
	derives    []string
	indent     int
	compact    bool
	colorMode  string
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:   "jsift [flags] [file]",
		Short: "stream-extract and filter elements of a JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd, &opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML pipeline configuration file")
	flags.StringVarP(&opts.path, "path", "p", "", "extraction path, e.g. 'response[*]' (default '[*]')")
	flags.StringArrayVarP(&opts.fields, "field", "f", nil, "field path spec to keep (repeatable)")
	flags.StringArrayVar(&opts.derives, "derive", nil, "derived field as name=EXPR (repeatable)")
	flags.IntVar(&opts.indent, "indent", 2, "spaces per indentation level")
	flags.BoolVar(&opts.compact, "compact", false, "one output value per line")
	flags.StringVar(&opts.colorMode, "color", "auto", "colorize output: auto, always, never")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	hook, err := derive.Compile(cfg.Derive)
	if err != nil {
		return err
	}

	pipeline, err := jsonsift.New(jsonsift.Config{
		Path:   cfg.Source.Path,
		Fields: cfg.Fields,
		Hook:   hook,
	})
	if err != nil {
		return err
	}

	var input io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	results, err := pipeline.Run(input)
	if err != nil {
		return err
	}

	return printResults(results, cfg.Output, opts.colorMode)
}

// loadConfig merges the config file (if any) with the command line flags;
// flags win.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.path != "" {
		cfg.Source.Path = opts.path
	}
	if len(opts.fields) > 0 {
		cfg.Fields = opts.fields
	}
	if len(opts.derives) > 0 {
		if cfg.Derive == nil {
			cfg.Derive = make(map[string]string)
		}
		for _, d := range opts.derives {
			name, expr, ok := strings.Cut(d, "=")
			if !ok || name == "" {
				return nil, fmt.Errorf("invalid --derive %q, want name=EXPR", d)
			}
			cfg.Derive[name] = expr
		}
	}
	if cmd.Flags().Changed("indent") {
		cfg.Output.Indent = opts.indent
	}
	if cmd.Flags().Changed("compact") {
		cfg.Output.Compact = opts.compact
	}
	return cfg, cfg.Validate()
}

func printResults(results []any, out config.Output, colorMode string) error {
	var colorizer *format.Colorizer
	switch colorMode {
	case "always":
		color.NoColor = false
		colorizer = &format.Default
	case "never":
	case "auto":
		if isatty.IsTerminal(os.Stdout.Fd()) {
			colorizer = &format.Default
		}
	default:
		return fmt.Errorf("invalid --color value %q (use auto, always, or never)", colorMode)
	}

	var stdout io.Writer = os.Stdout
	if colorizer != nil {
		stdout = colorable.NewColorableStdout()
	}

	indent := out.Indent
	if out.Compact {
		indent = -1
	}

	encoder := json.NewEncoder(stdout, indent)
	encoder.Colorizer = colorizer

	var produceErr error
	stream := token.StartStream(jsonsift.NewValueSource(results), func(err error) {
		produceErr = err
	})
	if err := token.ConsumeStream(stream, encoder); err != nil {
		return err
	}
	return produceErr
}
