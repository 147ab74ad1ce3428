package pkg

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
)

const (
	I18nConfigName   = "i18n.toml"
	ManifestName     = "Cargo.toml"
	DefaultAssetsDir = "i18n"
)

type i18nConfig struct {
	FallbackLanguage string `toml:"fallback_language"`
	Fluent           struct {
		AssetsDir string `toml:"assets_dir"`
	} `toml:"fluent"`
}

type manifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

type Project struct {
	Fs             afero.Fs
	Root           string
	FallbackLocale string
	CrateName      string
	AssetsDir      string
}

// I18nDir is the directory holding one subdirectory per locale.
func (p *Project) I18nDir() string {
	return filepath.Join(p.Root, p.AssetsDir)
}

// FallbackFile is the canonical resource file of the fallback locale.
func (p *Project) FallbackFile() string {
	return filepath.Join(p.I18nDir(), p.FallbackLocale, p.CrateName+".ftl")
}

func (p *Project) SourceDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(p.Root, dir)
}

func decodeTomlFile(afs afero.Fs, path string, v any) error {
	content, err := afero.ReadFile(afs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return errors.Join(ErrConfigMissing, fmt.Errorf("%s: %w", path, err))
	}
	if err != nil {
		return errors.Join(ErrConfigMissing, fmt.Errorf("reading %s: %w", path, err))
	}
	if _, err := toml.Decode(string(content), v); err != nil {
		return errors.Join(ErrConfigParse, fmt.Errorf("parsing %s: %w", path, err))
	}
	return nil
}

func LoadProject(afs afero.Fs, root string) (*Project, error) {
	var cfg i18nConfig
	if err := decodeTomlFile(afs, filepath.Join(root, I18nConfigName), &cfg); err != nil {
		return nil, err
	}
	if cfg.FallbackLanguage == "" {
		return nil, errors.Join(ErrConfigParse, fmt.Errorf("%s: fallback_language is not set", I18nConfigName))
	}

	var man manifest
	if err := decodeTomlFile(afs, filepath.Join(root, ManifestName), &man); err != nil {
		return nil, err
	}
	if man.Package.Name == "" {
		return nil, errors.Join(ErrConfigParse, fmt.Errorf("%s: package.name is not set", ManifestName))
	}

	if _, err := language.Parse(cfg.FallbackLanguage); err != nil {
		slog.Warn("Fallback language is not a valid language tag", "fallback", cfg.FallbackLanguage, "error", err)
	}

	assets := cfg.Fluent.AssetsDir
	if assets == "" {
		assets = DefaultAssetsDir
	}

	return &Project{
		Fs:             afs,
		Root:           root,
		FallbackLocale: cfg.FallbackLanguage,
		CrateName:      man.Package.Name,
		AssetsDir:      assets,
	}, nil
}

// FindRoot walks upwards from start and returns the first directory containing i18n.toml.
func FindRoot(afs afero.Fs, start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		exists, err := afero.Exists(afs, filepath.Join(dir, I18nConfigName))
		if err != nil {
			return "", err
		}
		if exists {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s above %s", ErrNoProjectRoot, I18nConfigName, start)
		}
		dir = parent
	}
}
