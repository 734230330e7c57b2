// Package config loads pipeline configuration from YAML files.
//
// A configuration file looks like:
//
//	source:
//	  path: response[*]
//	fields:
//	  - personid
//	  - personBasic.names[*].firstName
//	derive:
//	  displayName: 'personid + " (" + country + ")"'
//	output:
//	  indent: 2
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/davrell/jsonsift/extract"
	"github.com/davrell/jsonsift/project"
)

var (
	// ErrNoSource is returned when the source path is missing.
	ErrNoSource = errors.New("source path is required")
)

// Config is a full pipeline configuration.
type Config struct {
	Source Source            `yaml:"source"`
	Fields []string          `yaml:"fields"`
	Derive map[string]string `yaml:"derive"`
	Output Output            `yaml:"output"`
}

// Source says where in the document the elements are.
type Source struct {
	// Path is the extraction path, e.g. "response[*]".
	Path string `yaml:"path"`
}

// Output controls how the CLI prints results.
type Output struct {
	// Indent is the number of spaces per indentation level.
	Indent int `yaml:"indent"`
	// Compact puts each result value on a single line.
	Compact bool `yaml:"compact"`
}

// Default returns the configuration used when no file is given: the
// document itself is the element array, no projection, 2-space indent.
func Default() *Config {
	return &Config{
		Source: Source{Path: extract.ArrayMarker},
		Output: Output{Indent: 2},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open config: %w", err)
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r, yaml.Strict())
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, cfg.Validate()
		}
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the extraction path and all field specs, so that
// configuration errors surface before any bytes are processed.
func (c *Config) Validate() error {
	if c.Source.Path == "" {
		return ErrNoSource
	}
	if _, err := extract.ParsePath(c.Source.Path); err != nil {
		return err
	}
	if _, err := project.ParseSpecs(c.Fields); err != nil {
		return err
	}
	return nil
}
