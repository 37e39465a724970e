package util

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the content of a YAML configuration file.
type Config struct {
	Mode     string `yaml:"mode"`      // One of scan, parse, print, rename, llvm or interactive.
	Verbose  bool   `yaml:"verbose"`   // Same as -vb.
	Output   string `yaml:"output"`    // Same as -o.
	PoolSize int    `yaml:"pool_size"` // Same as -pool.
}

// LoadConfig reads and decodes the YAML configuration file at path. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	c := Config{}
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("could not read configuration: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("could not decode configuration %s: %w", path, err)
	}
	if c.PoolSize < 0 || c.PoolSize > maxPoolSize {
		return c, fmt.Errorf("configuration %s: pool_size must be in range [0, %d], 0 selects the default", path, maxPoolSize)
	}
	return c, nil
}

// Merge fills the options that were not given on the command line from c.
func (opt *Options) Merge(c Config) error {
	if opt.Mode == ModeUnset && len(c.Mode) > 0 {
		m, err := ParseMode(c.Mode)
		if err != nil {
			return fmt.Errorf("configuration: %w", err)
		}
		if m == ModeHelp {
			return fmt.Errorf("configuration: mode %q is only available as a flag", c.Mode)
		}
		opt.Mode = m
	}
	if !opt.Verbose {
		opt.Verbose = c.Verbose
	}
	if len(opt.Out) == 0 {
		opt.Out = c.Output
	}
	if opt.PoolSize == 0 {
		opt.PoolSize = c.PoolSize
	}
	return nil
}

// Resolve loads the configuration file named by opt, if any, merges it and defaults the mode to ModeParse.
func (opt *Options) Resolve() error {
	if len(opt.Config) > 0 {
		c, err := LoadConfig(opt.Config)
		if err != nil {
			return err
		}
		if err := opt.Merge(c); err != nil {
			return err
		}
	}
	if opt.Mode == ModeUnset {
		opt.Mode = ModeParse
	}
	return nil
}
