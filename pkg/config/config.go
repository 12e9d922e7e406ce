// Package config holds the settings for a pdbclean run. They start from
// Default, may be read from a YAML or TOML file, and are then overridden
// by command line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/andrew-torda/pdbclean/pdb/pdbrec"
	"github.com/andrew-torda/pdbclean/pdb/slurp"
	"github.com/andrew-torda/pdbclean/pkg/common"
	"github.com/andrew-torda/pdbclean/pkg/logging"
)

// Config is everything that can be set from a file.
type Config struct {
	Output        string `yaml:"output" toml:"output"`
	TitleSuffix   string `yaml:"title_suffix" toml:"title_suffix"`
	Seed          string `yaml:"seed" toml:"seed"`
	SeedLine      int    `yaml:"seed_line" toml:"seed_line"`
	FlushTrailing bool   `yaml:"flush_trailing" toml:"flush_trailing"`
	Layout        string `yaml:"layout" toml:"layout"`
	ReadMode      string `yaml:"read_mode" toml:"read_mode"`
	Log           string `yaml:"log" toml:"log"`
	LogLevel      string `yaml:"log_level" toml:"log_level"`
	MetricsFile   string `yaml:"metrics_file" toml:"metrics_file"`
	Jobs          int    `yaml:"jobs" toml:"jobs"`
}

// Default is a config that behaves like the old cleaner on a
// well formed file, but does not lose a trailing residue.
func Default() Config {
	opts := pdbrec.DefaultBuildOptions()
	return Config{
		Output:        common.DefaultOutput,
		TitleSuffix:   opts.TitleSuffix,
		Seed:          opts.Seed.String(),
		SeedLine:      opts.SeedLine,
		FlushTrailing: opts.FlushTrailing,
		Layout:        pdbrec.LayoutLegacy.String(),
		ReadMode:      slurp.Mmap.String(),
		Log:           "stderr",
		LogLevel:      "info",
		Jobs:          4,
	}
}

// SetLegacy switches on everything the old cleaner did, including
// its mistakes.
func (c *Config) SetLegacy() {
	opts := pdbrec.LegacyBuildOptions()
	c.Seed = opts.Seed.String()
	c.SeedLine = opts.SeedLine
	c.FlushTrailing = opts.FlushTrailing
	c.Layout = pdbrec.LayoutLegacy.String()
}

// Load reads a config file on top of the defaults. The extension picks
// the format. Keys we do not know about are an error, since they are
// almost always typing mistakes.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return c, fmt.Errorf("config %s: %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return c, fmt.Errorf("config %s: %w", path, err)
		}
	default:
		return c, fmt.Errorf("config %s: unknown extension %q, want .yaml, .yml or .toml", path, ext)
	}
	return c, c.Validate()
}

// Validate reports every bad value at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := pdbrec.ParseSeed(c.Seed); err != nil {
		errs = append(errs, err)
	}
	if _, err := pdbrec.ParseLayout(c.Layout); err != nil {
		errs = append(errs, err)
	}
	if _, err := slurp.ParseMode(c.ReadMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.SeedLine < 0 {
		errs = append(errs, fmt.Errorf("seed_line %d is negative", c.SeedLine))
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs %d: need at least 1", c.Jobs))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output name is empty"))
	}
	return errors.Join(errs...)
}

// BuildOptions turns the config into options for pdbrec.Build.
func (c Config) BuildOptions() (pdbrec.BuildOptions, error) {
	seed, err := pdbrec.ParseSeed(c.Seed)
	if err != nil {
		return pdbrec.BuildOptions{}, err
	}
	return pdbrec.BuildOptions{
		Seed:          seed,
		SeedLine:      c.SeedLine,
		FlushTrailing: c.FlushTrailing,
		TitleSuffix:   c.TitleSuffix,
	}, nil
}

// LayoutValue is the output layout.
func (c Config) LayoutValue() (pdbrec.Layout, error) { return pdbrec.ParseLayout(c.Layout) }

// ReadModeValue says how input files are read.
func (c Config) ReadModeValue() (slurp.Mode, error) { return slurp.ParseMode(c.ReadMode) }
