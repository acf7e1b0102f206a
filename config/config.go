// Package config loads alphabet and keyset settings for the basen command from YAML or TOML files.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vdparikh/basen"
)

// Config is the basen command configuration.
type Config struct {
	// alphabet used when none is given on the command line
	Default string `yaml:"default" toml:"default"`

	// custom alphabets by name, in addition to the predefined ones
	Alphabets map[string]string `yaml:"alphabets" toml:"alphabets"`

	// cleartext JSON keyset for sealed encodings, empty for plain encodings
	Keyset string `yaml:"keyset" toml:"keyset"`
	Tweak  string `yaml:"tweak" toml:"tweak"`

	// snowflake node id used by the gen command
	Node int64 `yaml:"node" toml:"node"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Default:   "base58",
		Alphabets: map[string]string{},
		Node:      1,
	}
}

// Unmarshal decodes YAML into c, keeping fields the document omits.
func (c *Config) Unmarshal(b []byte) error {
	return yaml.Unmarshal(b, c)
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	conf := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = conf.Unmarshal(data)
	case ".toml":
		err = toml.Unmarshal(data, conf)
	default:
		return nil, errors.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	if err = conf.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return conf, nil
}

// Validate checks that every custom alphabet is well formed and that the
// default names a known alphabet.
func (c *Config) Validate() error {
	_, err := c.Registry()
	return err
}

// Registry builds the alphabet registry described by c.
func (c *Config) Registry() (*Registry, error) {
	r := &Registry{
		alphabets: make(map[string]*basen.Alphabet),
	}
	for _, name := range basen.Names() {
		a, _ := basen.Lookup(name)
		r.alphabets[name] = a
	}

	for name, chars := range c.Alphabets {
		a, err := basen.NewAlphabet(chars)
		if err != nil {
			return nil, errors.Wrapf(err, "alphabet %q", name)
		}
		r.alphabets[strings.ToLower(name)] = a
	}

	def := c.Default
	if def == "" {
		def = DefaultConfig().Default
	}
	a, err := r.Lookup(def)
	if err != nil {
		return nil, errors.Wrap(err, "default alphabet")
	}
	r.def = a
	return r, nil
}

// Registry resolves alphabet names. Names are case-insensitive.
type Registry struct {
	alphabets map[string]*basen.Alphabet
	def       *basen.Alphabet
}

// Lookup returns the alphabet registered under name.
func (r *Registry) Lookup(name string) (*basen.Alphabet, error) {
	a, ok := r.alphabets[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown alphabet %q", name)
	}
	return a, nil
}

// Default returns the configured default alphabet.
func (r *Registry) Default() *basen.Alphabet {
	return r.def
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.alphabets))
	for name := range r.alphabets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
