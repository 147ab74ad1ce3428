package pkg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

type Entry struct {
	Key   string
	Value string
	File  string
	Line  int
}

// Catalog is the ordered set of keys declared in a single resource file.
type Catalog struct {
	File    string
	order   []string
	entries map[string]Entry
}

func (c *Catalog) Keys() []string {
	return c.order
}

func (c *Catalog) Get(key string) (Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

func (c *Catalog) Len() int {
	return len(c.order)
}

func (c *Catalog) set(e Entry) {
	if _, ok := c.entries[e.Key]; !ok {
		c.order = append(c.order, e.Key)
	}
	c.entries[e.Key] = e
}

func NewCatalog(file string) *Catalog {
	return &Catalog{File: file, entries: make(map[string]Entry)}
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

// declaration returns the key and value of a "key = value" line.
func declaration(line string) (string, string, bool) {
	if isIndented(line) || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	left, right, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key := strings.TrimSpace(left)
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(right), true
}

func ParseCatalog(r io.Reader, file string) (*Catalog, error) {
	catalog := NewCatalog(file)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		line := scanner.Text()
		if key, value, ok := declaration(line); ok {
			catalog.set(Entry{Key: key, Value: value, File: file, Line: lineNo})
		}
		lineNo++
	}
	if err := scanner.Err(); err != nil {
		return catalog, errors.Join(ErrResourceFileIO, fmt.Errorf("reading %s: %w", file, err))
	}
	return catalog, nil
}

func ExtractCatalog(afs afero.Fs, path string) (*Catalog, error) {
	f, err := afs.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Join(ErrResourceFileMissing, fmt.Errorf("%s: %w", path, err))
	}
	if err != nil {
		return nil, errors.Join(ErrResourceFileIO, fmt.Errorf("opening %s: %w", path, err))
	}
	defer f.Close()
	return ParseCatalog(f, path)
}
