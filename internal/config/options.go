package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Options configures a date entry field. The same struct backs the YAML
// options file, the CLI flags and the GUI preferences.
type Options struct {
	DateFormat   string `yaml:"date_format"`
	Separator    string `yaml:"separator"`
	Locale       string `yaml:"locale"`
	Value        string `yaml:"value"`
	Min          string `yaml:"min"`
	Max          string `yaml:"max"`
	Placeholder  string `yaml:"placeholder"`
	Required     bool   `yaml:"required"`
	Disabled     bool   `yaml:"disabled"`
	ReturnString bool   `yaml:"return_string"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		DateFormat: DefaultDateFormat,
		Separator:  DefaultSeparator,
		Locale:     DefaultLanguage,
	}
}

// LoadOptions reads a YAML options file on top of DefaultOptions.
// Keys absent from the file keep their default; unknown keys are an error.
// An empty path returns the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("%s: %w", ErrConfigRead, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return DefaultOptions(), fmt.Errorf("%s: %w", ErrConfigParse, err)
	}

	if err := opts.Validate(); err != nil {
		return DefaultOptions(), err
	}
	return opts, nil
}

// Validate rejects options that cannot describe a date field at all.
// Malformed layouts are deliberately accepted: unknown codes become opaque segments.
func (o Options) Validate() error {
	if o.DateFormat == "" {
		return fmt.Errorf("%s: %s is empty", ErrConfigInvalid, FlagFormat)
	}
	return nil
}
