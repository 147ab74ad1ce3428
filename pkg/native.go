package pkg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// NativeSearcher counts pattern matches in-process for environments without ripgrep.
type NativeSearcher struct {
	Fs afero.Fs
}

func (s *NativeSearcher) matcher(pattern Pattern) (func(content string) int, error) {
	if pattern.Literal {
		return func(content string) int {
			return strings.Count(content, pattern.Expr)
		}, nil
	}

	// Go regexps match \n without an extra flag, so multiline patterns need no special handling
	re, err := regexp.Compile(pattern.Expr)
	if err != nil {
		return nil, err
	}
	return func(content string) int {
		return len(re.FindAllStringIndex(content, -1))
	}, nil
}

func (s *NativeSearcher) Search(ctx context.Context, pattern Pattern, dir string) ([]FileMatches, error) {
	count, err := s.matcher(pattern)
	if err != nil {
		return nil, errors.Join(ErrSearchInvocation, fmt.Errorf("compiling %q: %w", pattern.Expr, err))
	}

	var results []FileMatches
	err = afero.Walk(s.Fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() {
			if path != dir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		content, err := afero.ReadFile(s.Fs, path)
		if err != nil {
			return err
		}
		if n := count(string(content)); n > 0 {
			results = append(results, FileMatches{File: path, Matches: n})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrSearchInvocation, fmt.Errorf("searching %s: %w", dir, err))
	}
	return results, nil
}

func NewNativeSearcher(afs afero.Fs) *NativeSearcher {
	return &NativeSearcher{Fs: afs}
}
