package pkg

import (
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

const (
	SearcherRipgrep = "ripgrep"
	SearcherNative  = "native"

	FormatText = "text"
	FormatYaml = "yaml"
)

type Settings struct {
	Root         string `yaml:"root" env:"ROOT"`
	SourceDir    string `yaml:"source_dir" env:"SOURCE_DIR"`
	Macro        string `yaml:"macro" env:"MACRO"`
	Extension    string `yaml:"extension" env:"EXTENSION"`
	Searcher     string `yaml:"searcher" env:"SEARCHER"`
	RipgrepBin   string `yaml:"ripgrep_bin" env:"RG_BIN"`
	Workers      int    `yaml:"workers" env:"WORKERS"`
	DryRun       bool   `yaml:"dry_run" env:"DRY_RUN"`
	ReportFormat string `yaml:"report_format" env:"REPORT_FORMAT"`
	LogLevel     string `yaml:"log_level" env:"LOG_LEVEL"`
}

func (s *Settings) Validate() error {
	switch s.Searcher {
	case SearcherRipgrep:
		if s.RipgrepBin == "" {
			return fmt.Errorf("ripgrep_bin must be specified for the ripgrep searcher")
		}
	case SearcherNative:
		// Native searcher runs in-process
	default:
		return fmt.Errorf("unknown searcher: %s", s.Searcher)
	}

	switch s.ReportFormat {
	case FormatText, FormatYaml:
	default:
		return fmt.Errorf("unknown report_format: %s", s.ReportFormat)
	}

	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	if s.Macro == "" {
		return fmt.Errorf("macro must not be empty")
	}
	if s.Extension == "" {
		return fmt.Errorf("extension must not be empty")
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", s.LogLevel, err)
	}
	return nil
}

func NewDefaultSettings() *Settings {
	return &Settings{
		SourceDir:    "src",
		Macro:        "fl!",
		Extension:    ".ftl",
		Searcher:     SearcherRipgrep,
		RipgrepBin:   "rg",
		Workers:      1,
		ReportFormat: FormatText,
		LogLevel:     "info",
	}
}

func OverrideFromFile(filePath string, settings *Settings) (*Settings, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return settings, fmt.Errorf("error opening settings file %s: %w", filePath, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return settings, fmt.Errorf("error reading settings file %s: %w", filePath, err)
	}

	if err := yaml.Unmarshal(content, settings); err != nil {
		return settings, fmt.Errorf("error parsing settings file %s: %w", filePath, err)
	}
	return settings, nil
}

// OverrideFromEnv applies FTLPRUNE_* environment variables on top of settings.
// Variables that are not set leave the current value untouched.
func OverrideFromEnv(settings *Settings) (*Settings, error) {
	opts := env.Options{Prefix: "FTLPRUNE_"}
	if err := env.ParseWithOptions(settings, opts); err != nil {
		return settings, fmt.Errorf("error reading settings from environment: %w", err)
	}
	return settings, nil
}

// LoadSettings builds the settings from defaults, an optional YAML file and the environment.
func LoadSettings(filePath string) (*Settings, error) {
	settings := NewDefaultSettings()
	if filePath != "" {
		if _, err := OverrideFromFile(filePath, settings); err != nil {
			return settings, err
		}
	}
	return OverrideFromEnv(settings)
}

func NewSearcher(s *Settings, project *Project) Searcher {
	switch s.Searcher {
	case SearcherNative:
		return NewNativeSearcher(project.Fs)
	default:
		return NewRipgrepSearcher(s.RipgrepBin)
	}
}
