package pkg

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/davidkleiven/ftlprune/testutils"
	"github.com/spf13/afero"
)

func TestSplitLines(t *testing.T) {
	for _, test := range []struct {
		content  string
		expected []string
	}{
		{"", nil},
		{"a\n", []string{"a\n"}},
		{"a\nb", []string{"a\n", "b"}},
		{"a\r\n\nb\n", []string{"a\r\n", "\n", "b\n"}},
	} {
		t.Run(fmt.Sprintf("%q", test.content), func(t *testing.T) {
			testutils.AssertSliceEqual(t, SplitLines(test.content), test.expected)
		})
	}
}

func TestPruneLines(t *testing.T) {
	unused := NewKeySet("orphan", "multi")
	for _, test := range []struct {
		name     string
		content  string
		expected string
	}{
		{
			"Single line key",
			"greeting = Hello\norphan = Unused text\nbye = Bye\n",
			"greeting = Hello\nbye = Bye\n",
		},
		{
			"Continuation block removed",
			"greeting = Hello\nmulti = Line one\n  continued line\n  another\nbye = Bye\n",
			"greeting = Hello\nbye = Bye\n",
		},
		{
			"Tab continuation",
			"multi =\n\tfirst\n\tsecond\nbye = Bye\n",
			"bye = Bye\n",
		},
		{
			"Continuation of kept key untouched",
			"greeting = Hello\n  world\norphan = x\n",
			"greeting = Hello\n  world\n",
		},
		{
			"Blank line ends block",
			"multi = one\n\n  indented after blank\n",
			"\n  indented after blank\n",
		},
		{
			"Adjacent unused keys",
			"orphan = a\n  more\nmulti = b\n  more\nkept = c\n",
			"kept = c\n",
		},
		{
			"Last line without newline",
			"kept = c\nmulti = b\n  tail",
			"kept = c\n",
		},
		{
			"Key must match exactly",
			"orphans = a\nmulti-line = b\n",
			"orphans = a\nmulti-line = b\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			result := strings.Join(PruneLines(SplitLines(test.content), unused), "")
			testutils.AssertEqual(t, result, test.expected)
		})
	}
}

func TestPruneLinesRemovesKeyPlusContinuations(t *testing.T) {
	unused := NewKeySet("multi")
	for n := 0; n < 5; n++ {
		t.Run(fmt.Sprintf("%d continuation lines", n), func(t *testing.T) {
			lines := []string{"before = 1\n", "multi = first\n"}
			for i := 0; i < n; i++ {
				lines = append(lines, fmt.Sprintf("  line %d\n", i))
			}
			lines = append(lines, "after = 2\n")

			kept := PruneLines(lines, unused)
			testutils.AssertEqual(t, len(lines)-len(kept), 1+n)
		})
	}
}

func TestPruneLinesIsIdempotent(t *testing.T) {
	unused := NewKeySet("orphan", "multi")
	lines := SplitLines("a = 1\norphan = x\nmulti = y\n  z\nb = 2\n  w\n")
	once := PruneLines(lines, unused)
	twice := PruneLines(once, unused)
	testutils.AssertSliceEqual(t, twice, once)
}

func pruneFixture(t *testing.T) afero.Fs {
	return testutils.MemFs(t, map[string]string{
		"/repo/i18n/en/app.ftl":  "greeting = Hello\norphan = Unused text\nmulti = Line one\n  continued line\n  another\n",
		"/repo/i18n/de/app.ftl":  "greeting = Hallo\nmulti = Zeile eins\n  weiter\norphan = Unbenutzt\n",
		"/repo/i18n/de/misc.ftl": "orphan = Anderes\n",
		"/repo/i18n/de/notes.md": "orphan = not a resource\n",
	})
}

func TestPrune(t *testing.T) {
	fs := pruneFixture(t)
	unused := NewKeySet("orphan", "multi")

	results, err := NewPruner(fs, ".ftl", false).Prune(context.Background(), "/repo/i18n", unused)
	testutils.AssertNil(t, err)

	testutils.AssertEqual(t, testutils.ReadFile(t, fs, "/repo/i18n/en/app.ftl"), "greeting = Hello\n")
	testutils.AssertEqual(t, testutils.ReadFile(t, fs, "/repo/i18n/de/app.ftl"), "greeting = Hallo\n")
	testutils.AssertEqual(t, testutils.ReadFile(t, fs, "/repo/i18n/de/misc.ftl"), "")
	testutils.AssertEqual(t, testutils.ReadFile(t, fs, "/repo/i18n/de/notes.md"), "orphan = not a resource\n")

	// Lexical walk order
	testutils.AssertEqual(t, len(results), 3)
	testutils.AssertEqual(t, results[0], PruneResult{File: "/repo/i18n/de/app.ftl", Original: 4, Removed: 3, Kept: 1})
	testutils.AssertEqual(t, results[1], PruneResult{File: "/repo/i18n/de/misc.ftl", Original: 1, Removed: 1, Kept: 0})
	testutils.AssertEqual(t, results[2], PruneResult{File: "/repo/i18n/en/app.ftl", Original: 5, Removed: 4, Kept: 1})
}

func TestPruneNoRemainingUnusedKeys(t *testing.T) {
	fs := pruneFixture(t)
	unused := NewKeySet("orphan", "multi")
	pruner := NewPruner(fs, ".ftl", false)

	_, err := pruner.Prune(context.Background(), "/repo/i18n", unused)
	testutils.AssertNil(t, err)

	for _, path := range []string{"/repo/i18n/en/app.ftl", "/repo/i18n/de/app.ftl", "/repo/i18n/de/misc.ftl"} {
		for _, line := range SplitLines(testutils.ReadFile(t, fs, path)) {
			if unused.Contains(keyCandidate(line)) {
				t.Fatalf("%s still contains unused key line %q", path, line)
			}
		}
	}

	// A second run changes nothing
	results, err := pruner.Prune(context.Background(), "/repo/i18n", unused)
	testutils.AssertNil(t, err)
	for _, r := range results {
		testutils.AssertEqual(t, r.Removed, 0)
	}
}

func TestPruneDryRun(t *testing.T) {
	fs := pruneFixture(t)
	before := testutils.ReadFile(t, fs, "/repo/i18n/en/app.ftl")

	results, err := NewPruner(fs, ".ftl", true).Prune(context.Background(), "/repo/i18n", NewKeySet("orphan"))
	testutils.AssertNil(t, err)
	testutils.AssertEqual(t, results[2].Removed, 1)
	testutils.AssertEqual(t, testutils.ReadFile(t, fs, "/repo/i18n/en/app.ftl"), before)
}

func TestPrunePreservesFileMode(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutils.AssertNil(t, afero.WriteFile(fs, "/repo/i18n/en/app.ftl", []byte("orphan = x\nkept = y\n"), 0o600))

	_, err := NewPruner(fs, ".ftl", false).Prune(context.Background(), "/repo/i18n", NewKeySet("orphan"))
	testutils.AssertNil(t, err)

	info, err := fs.Stat("/repo/i18n/en/app.ftl")
	testutils.AssertNil(t, err)
	testutils.AssertEqual(t, info.Mode().Perm(), os.FileMode(0o600))
}

func TestPruneReadOnlyFsFails(t *testing.T) {
	fs := afero.NewReadOnlyFs(pruneFixture(t))
	_, err := NewPruner(fs, ".ftl", false).Prune(context.Background(), "/repo/i18n", NewKeySet("orphan"))
	testutils.AssertErrorIs(t, err, ErrResourceFileIO)
}

func TestPruneMissingRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := NewPruner(fs, ".ftl", false).Prune(context.Background(), "/repo/i18n", NewKeySet("orphan"))
	testutils.AssertErrorIs(t, err, ErrResourceFileIO)
}
