package pkg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

type PruneResult struct {
	File     string `yaml:"file"`
	Original int    `yaml:"original"`
	Removed  int    `yaml:"removed"`
	Kept     int    `yaml:"kept"`
}

// SplitLines splits content into lines keeping their terminators.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func keyCandidate(line string) string {
	left, _, _ := strings.Cut(line, "=")
	return strings.TrimSpace(left)
}

// PruneLines drops every line declaring an unused key together with the
// indented continuation lines that follow it.
func PruneLines(lines []string, unused *KeySet) []string {
	removed := make([]bool, len(lines))
	inBlock := false
	for i, line := range lines {
		if inBlock {
			if isIndented(line) {
				removed[i] = true
			} else {
				inBlock = false
			}
		}

		// Runs for continuation lines too so a key line always starts a new block
		if unused.Contains(keyCandidate(line)) {
			removed[i] = true
			inBlock = true
		}
	}

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if !removed[i] {
			kept = append(kept, line)
		}
	}
	return kept
}

type Pruner struct {
	Fs        afero.Fs
	Extension string
	DryRun    bool
}

func (p *Pruner) PruneFile(ctx context.Context, path string, unused *KeySet) (PruneResult, error) {
	info, err := p.Fs.Stat(path)
	if err != nil {
		return PruneResult{}, errors.Join(ErrResourceFileIO, fmt.Errorf("stat %s: %w", path, err))
	}
	content, err := afero.ReadFile(p.Fs, path)
	if err != nil {
		return PruneResult{}, errors.Join(ErrResourceFileIO, fmt.Errorf("reading %s: %w", path, err))
	}

	lines := SplitLines(string(content))
	kept := PruneLines(lines, unused)
	result := PruneResult{
		File:     path,
		Original: len(lines),
		Removed:  len(lines) - len(kept),
		Kept:     len(kept),
	}
	if result.Removed == 0 {
		return result, nil
	}

	slog.InfoContext(ctx, "Pruning resource file", "removed", result.Removed, "kept", result.Kept, "dryRun", p.DryRun)
	if p.DryRun {
		return result, nil
	}
	if err := afero.WriteFile(p.Fs, path, []byte(strings.Join(kept, "")), info.Mode()); err != nil {
		return result, errors.Join(ErrResourceFileIO, fmt.Errorf("writing %s: %w", path, err))
	}
	return result, nil
}

// Prune rewrites every resource file below root. Files already rewritten stay
// rewritten when a later file fails.
func (p *Pruner) Prune(ctx context.Context, root string, unused *KeySet) ([]PruneResult, error) {
	var results []PruneResult
	err := afero.Walk(p.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Join(ErrResourceFileIO, err)
		}
		if info.IsDir() || filepath.Ext(path) != p.Extension {
			return nil
		}

		fileCtx := WithValue(ctx, FileKey, path)
		if rel, err := filepath.Rel(root, path); err == nil {
			fileCtx = WithValue(fileCtx, LocaleKey, strings.SplitN(filepath.ToSlash(rel), "/", 2)[0])
		}

		result, err := p.PruneFile(fileCtx, path, unused)
		if err != nil {
			return err
		}
		results = append(results, result)
		return nil
	})
	return results, err
}

func NewPruner(afs afero.Fs, extension string, dryRun bool) *Pruner {
	return &Pruner{Fs: afs, Extension: extension, DryRun: dryRun}
}
