// Package config loads generation requests from YAML (or JSON) files.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"gridforge/pkg/engine/logger"
	"gridforge/pkg/game/request"
)

// Output formats
const (
	FormatASCII = "ascii"
	FormatJSON  = "json"
)

// File is the top-level layout of a request file
type File struct {
	Request request.Raw   `yaml:"request"`
	Logging logger.Config `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// OutputConfig controls how the CLI prints a layout
type OutputConfig struct {
	// Format is ascii (coloured preview) or json (full GridLayout)
	Format string `yaml:"format"`

	// Color is auto, always or never
	Color string `yaml:"color"`

	// DumpPath, when set, receives a plain-text debug dump of the layout
	DumpPath string `yaml:"dump_path"`
}

// DefaultFile returns a File with default logging and output settings and
// an empty request
func DefaultFile() *File {
	return &File{
		Logging: logger.DefaultConfig(),
		Output: OutputConfig{
			Format: FormatASCII,
			Color:  "auto",
		},
	}
}

// Load reads a request file. A missing file is an error.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a request file. Unset logging and output fields keep their
// defaults; logging environment overrides are applied last.
func Parse(data []byte) (*File, error) {
	var parsed File
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse request file: %w", err)
	}

	f := DefaultFile()
	f.Request = parsed.Request
	f.Logging = logger.ApplyEnv(parsed.Logging.Merge(f.Logging))
	if parsed.Output.Format != "" {
		f.Output.Format = strings.ToLower(parsed.Output.Format)
	}
	if parsed.Output.Color != "" {
		f.Output.Color = strings.ToLower(parsed.Output.Color)
	}
	f.Output.DumpPath = parsed.Output.DumpPath

	if err := f.Output.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the output settings
func (o OutputConfig) Validate() error {
	switch o.Format {
	case FormatASCII, FormatJSON:
	default:
		return fmt.Errorf("output.format: unknown format %q", o.Format)
	}
	switch o.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color: unknown mode %q", o.Color)
	}
	return nil
}
