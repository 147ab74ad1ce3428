package pkg

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// ripgrep exits with status 1 when the search completed without any match.
const ripgrepNoMatchStatus = 1

type ripgrepRecord struct {
	Type string `json:"type"`
	Data struct {
		Path *struct {
			Text string `json:"text"`
		} `json:"path"`
		Stats *struct {
			Matches *int `json:"matches"`
		} `json:"stats"`
	} `json:"data"`
}

// ParseRipgrepJSON collects the per-file match counts from ripgrep's --json output.
// Records without data.stats.matches carry no verdict and are skipped.
func ParseRipgrepJSON(r io.Reader) ([]FileMatches, error) {
	var results []FileMatches
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var record ripgrepRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return results, fmt.Errorf("decoding ripgrep record: %w", err)
		}
		if record.Type != "end" || record.Data.Stats == nil || record.Data.Stats.Matches == nil {
			continue
		}

		file := ""
		if record.Data.Path != nil {
			file = record.Data.Path.Text
		}
		results = append(results, FileMatches{File: file, Matches: *record.Data.Stats.Matches})
	}
	return results, scanner.Err()
}

type RipgrepSearcher struct {
	Binary string
}

func (s *RipgrepSearcher) Args(pattern Pattern, dir string) []string {
	args := []string{"--json"}
	if pattern.Literal {
		args = append(args, "--fixed-strings")
	}
	if pattern.Multiline {
		args = append(args, "--multiline")
	}
	return append(args, "-e", pattern.Expr, dir)
}

func (s *RipgrepSearcher) Search(ctx context.Context, pattern Pattern, dir string) ([]FileMatches, error) {
	args := s.Args(pattern, dir)
	cmd := exec.CommandContext(ctx, s.Binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.DebugContext(ctx, "Running search", "command", s.Binary+" "+strings.Join(args, " "))
	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == ripgrepNoMatchStatus {
		err = nil
	}
	if err != nil {
		return nil, errors.Join(ErrSearchInvocation, fmt.Errorf("%s %q: %w: %s", s.Binary, pattern.Expr, err, strings.TrimSpace(stderr.String())))
	}

	results, err := ParseRipgrepJSON(&stdout)
	if err != nil {
		return nil, errors.Join(ErrSearchInvocation, err)
	}
	return results, nil
}

func NewRipgrepSearcher(binary string) *RipgrepSearcher {
	return &RipgrepSearcher{Binary: binary}
}
