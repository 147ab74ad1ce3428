package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davidkleiven/ftlprune/pkg"
	"github.com/lmittmann/tint"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

func setupLogging(level string) error {
	l, err := pkg.ParseLevel(level)
	if err != nil {
		return err
	}
	handler := pkg.NewHandler(tint.NewHandler(os.Stderr, &tint.Options{Level: l, TimeFormat: time.Kitchen}))
	slog.SetDefault(slog.New(handler))
	return nil
}

func applyFlags(c *cli.Context, settings *pkg.Settings) {
	if c.IsSet("root") {
		settings.Root = c.String("root")
	}
	if c.IsSet("source") {
		settings.SourceDir = c.String("source")
	}
	if c.IsSet("macro") {
		settings.Macro = c.String("macro")
	}
	if c.IsSet("ext") {
		settings.Extension = c.String("ext")
	}
	if c.IsSet("searcher") {
		settings.Searcher = c.String("searcher")
	}
	if c.IsSet("rg") {
		settings.RipgrepBin = c.String("rg")
	}
	if c.IsSet("workers") {
		settings.Workers = c.Int("workers")
	}
	if c.IsSet("dry-run") {
		settings.DryRun = c.Bool("dry-run")
	}
	if c.IsSet("format") {
		settings.ReportFormat = c.String("format")
	}
	if c.IsSet("log-level") {
		settings.LogLevel = c.String("log-level")
	}
}

func run(c *cli.Context) error {
	settings, err := pkg.LoadSettings(c.String("settings"))
	if err != nil {
		return err
	}
	applyFlags(c, settings)
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := setupLogging(settings.LogLevel); err != nil {
		return err
	}

	fs := afero.NewOsFs()
	root := settings.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		if root, err = pkg.FindRoot(fs, wd); err != nil {
			return err
		}
	}

	project, err := pkg.LoadProject(fs, root)
	if err != nil {
		return err
	}
	slog.Info("Loaded project", "root", project.Root, "crate", project.CrateName, "fallback", project.FallbackLocale)

	return pkg.NewCleaner(project, settings, c.App.Writer).Clean(c.Context)
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ftlprune",
		Usage: "Remove Fluent translation entries that are no longer referenced in the source code",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "root", Usage: "Project root holding i18n.toml and Cargo.toml (default: first parent directory with i18n.toml)"},
			&cli.StringFlag{Name: "settings", Usage: "YAML file with tool settings"},
			&cli.StringFlag{Name: "source", Usage: "Source directory to search, relative to the root"},
			&cli.StringFlag{Name: "macro", Usage: "Name of the translation macro"},
			&cli.StringFlag{Name: "ext", Usage: "Extension of resource files"},
			&cli.StringFlag{Name: "searcher", Usage: "Search backend: ripgrep or native"},
			&cli.StringFlag{Name: "rg", Usage: "Path to the ripgrep binary"},
			&cli.IntFlag{Name: "workers", Usage: "Number of keys probed concurrently"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Report unused keys without rewriting resource files"},
			&cli.StringFlag{Name: "format", Usage: "Report format: text or yaml"},
			&cli.StringFlag{Name: "log-level", Usage: "Log level: debug, info, warn or error"},
		},
		Action: run,
	}
}

func main() {
	setupLogging("info")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		slog.Error("Cleaning translations failed", "error", err)
		stop()
		os.Exit(1)
	}
}
