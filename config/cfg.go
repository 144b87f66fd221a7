package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"github.com/ocaml-wasm/ppx-css/rewrite"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// ReplacementValue configures what one identifier rewrites to: either a
	// fixed literal or an opaque reference token substituted positionally by
	// the caller. Exactly one of the two must be set.
	ReplacementValue struct {
		Literal *string `yaml:"literal,omitempty"`
		Ref     *string `yaml:"ref,omitempty"`
	}

	RewritingConfig struct {
		Rewrite                         map[string]ReplacementValue `yaml:"rewrite,omitempty"`
		DontHashPrefixes                []string                    `yaml:"dont_hash_prefixes,omitempty" validate:"dive,required"`
		AllowPotentialAccidentalHashing bool                        `yaml:"allow_potential_accidental_hashing"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Rewriting RewritingConfig `yaml:"rewriting"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

// Options converts the file configuration into engine options. Ref tokens
// become the opaque references the engine tracks by first use.
func (conf *RewritingConfig) Options() (rewrite.Options, error) {
	opts := rewrite.Options{
		DontHashPrefixes:                conf.DontHashPrefixes,
		AllowPotentialAccidentalHashing: conf.AllowPotentialAccidentalHashing,
	}
	if len(conf.Rewrite) > 0 {
		opts.Rewrite = make(map[string]rewrite.Replacement, len(conf.Rewrite))
	}
	for name, rv := range conf.Rewrite {
		switch {
		case rv.Literal != nil && rv.Ref == nil:
			opts.Rewrite[name] = rewrite.Literal(*rv.Literal)
		case rv.Ref != nil && rv.Literal == nil:
			opts.Rewrite[name] = rewrite.Opaque(*rv.Ref)
		default:
			return rewrite.Options{}, fmt.Errorf("rewrite entry %q must set exactly one of literal or ref", name)
		}
	}
	return opts, nil
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a
// byte slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
