package pkg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

type Cleaner struct {
	Project  *Project
	Settings *Settings
	Searcher Searcher
	Out      io.Writer
}

// FindUnused extracts the fallback catalog and probes the source tree for every key.
func (c *Cleaner) FindUnused(ctx context.Context) (*Catalog, *KeySet, error) {
	ctx = WithValue(ctx, LocaleKey, c.Project.FallbackLocale)
	catalog, err := ExtractCatalog(c.Project.Fs, c.Project.FallbackFile())
	if err != nil {
		return nil, nil, err
	}
	slog.InfoContext(ctx, "Extracted keys", "file", catalog.File, "numKeys", catalog.Len())

	prober := NewProber(c.Searcher, c.Settings.Macro, c.Settings.Workers)
	unused, err := prober.Unused(ctx, catalog, c.Project.SourceDir(c.Settings.SourceDir))
	if err != nil {
		return catalog, nil, err
	}
	slog.InfoContext(ctx, "Probed source tree", "numKeys", catalog.Len(), "numUnused", unused.Len())
	return catalog, unused, nil
}

// Clean removes unused keys from every locale and reports them.
func (c *Cleaner) Clean(ctx context.Context) error {
	_, unused, err := c.FindUnused(ctx)
	if err != nil {
		return err
	}

	var results []PruneResult
	if unused.Len() > 0 {
		pruner := NewPruner(c.Project.Fs, c.Settings.Extension, c.Settings.DryRun)
		results, err = pruner.Prune(ctx, c.Project.I18nDir(), unused)
		if err != nil {
			return fmt.Errorf("pruning %s: %w", c.Project.I18nDir(), err)
		}
	}

	return NewReporter(c.Out, c.Settings.ReportFormat).Report(unused, results)
}

func NewCleaner(project *Project, settings *Settings, out io.Writer) *Cleaner {
	return &Cleaner{
		Project:  project,
		Settings: settings,
		Searcher: NewSearcher(settings, project),
		Out:      out,
	}
}
