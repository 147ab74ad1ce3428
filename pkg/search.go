package pkg

import (
	"context"
	"regexp"
	"sync"
)

type Pattern struct {
	Expr string

	// Literal patterns are matched verbatim, others are regular expressions.
	Literal bool

	// Multiline lets the expression match across line breaks.
	Multiline bool
}

type FileMatches struct {
	File    string
	Matches int
}

type Searcher interface {
	Search(ctx context.Context, pattern Pattern, dir string) ([]FileMatches, error)
}

func TotalMatches(results []FileMatches) int {
	total := 0
	for _, r := range results {
		total += r.Matches
	}
	return total
}

// SingleLinePattern matches an invocation passing the key as first argument on the same line.
func SingleLinePattern(macro, key string) Pattern {
	return Pattern{Expr: macro + `("` + key + `"`, Literal: true}
}

// MultiLinePattern matches an invocation where the key follows the opening parenthesis on the next line.
func MultiLinePattern(macro, key string) Pattern {
	expr := regexp.QuoteMeta(macro) + `\(\r?\n[ \t]*"` + regexp.QuoteMeta(key) + `"`
	return Pattern{Expr: expr, Multiline: true}
}

type InMemorySearcher struct {
	Results map[string][]FileMatches
	Err     error
	Calls   []Pattern
	mu      sync.Mutex
}

func (s *InMemorySearcher) Search(ctx context.Context, pattern Pattern, dir string) ([]FileMatches, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, pattern)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Results[pattern.Expr], nil
}

func NewInMemorySearcher() *InMemorySearcher {
	return &InMemorySearcher{Results: make(map[string][]FileMatches)}
}
