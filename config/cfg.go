package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"bcheck/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// AnalysisConfig selects what the engine looks for and how strictly it
	// judges what it finds.
	AnalysisConfig struct {
		Target       string   `yaml:"target" validate:"required,oneof=widely-available newly-available limited"`
		Browsers     []string `yaml:"browsers" validate:"dive,oneof=chrome firefox safari edge chrome-android firefox-android safari-ios"`
		Exceptions   []string `yaml:"exceptions" validate:"dive,required"`
		ScriptParser string   `yaml:"script_parser" validate:"omitempty,oneof=lines lexer"`
		Ignore       []string `yaml:"ignore"`
		GenFixes     bool     `yaml:"generate_fixes"`
	}

	// ReportConfig shapes the run output and the CI thresholds.
	ReportConfig struct {
		Format      string `yaml:"format" validate:"required,oneof=console json junit"`
		Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
		MaxErrors   int    `yaml:"max_errors" validate:"gte=-1"`
		MaxWarnings int    `yaml:"max_warnings" validate:"gte=-1"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Analysis  AnalysisConfig `yaml:"analysis"`
		Report    ReportConfig   `yaml:"report"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// TargetTier returns the configured target as an enum. Validation already
// guaranteed the value parses.
func (c *AnalysisConfig) TargetTier() common.Target {
	t, _ := common.ParseTarget(c.Target)
	return t
}

// Parser returns the configured script parser, defaulting to the line
// scanner when unset.
func (c *AnalysisConfig) Parser() common.ScriptParser {
	if len(c.ScriptParser) == 0 {
		return common.ScriptParserLines
	}
	p, _ := common.ParseScriptParser(c.ScriptParser)
	return p
}

// Fmt returns the configured report format as an enum.
func (c *ReportConfig) Fmt() common.OutputFmt {
	f, _ := common.ParseOutputFmt(c.Format)
	return f
}

// Validate rejects ignore globs filepath.Match cannot handle, so the walker
// never has to care about pattern errors.
func (c *AnalysisConfig) ValidateIgnoreGlobs() error {
	for _, pattern := range c.Ignore {
		if _, err := filepath.Match(pattern, "probe"); err != nil {
			return fmt.Errorf("bad ignore pattern %q: %w", pattern, err)
		}
	}
	return nil
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
		if err := cfg.Analysis.ValidateIgnoreGlobs(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
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

// Prepare generates configuration file from template and returns it as a byte
// slice.
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
