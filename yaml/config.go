// Package yaml loads linksum configuration from YAML files.
package yaml

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/linksum"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from r over the defaults: keys absent from the
// document keep their default values.
func Load(r io.Reader) (linksum.Config, error) {
	cfg := linksum.DefaultConfig()

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return linksum.Config{}, linksum.WrapError(err, linksum.EINVALID, "parsing config")
	}

	if err := cfg.Validate(); err != nil {
		return linksum.Config{}, err
	}
	return cfg, nil
}

// LoadFile loads configuration from path. A missing file yields the
// defaults, so a config file is optional.
func LoadFile(path string) (linksum.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return linksum.DefaultConfig(), nil
		}
		return linksum.Config{}, linksum.WrapError(err, linksum.EINVALID, "opening config %s", path)
	}
	defer f.Close()

	return Load(f)
}
