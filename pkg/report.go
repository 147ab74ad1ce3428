package pkg

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

type Report struct {
	UnusedKeys []string      `yaml:"unused_keys"`
	Files      []PruneResult `yaml:"files,omitempty"`
}

type Reporter struct {
	Out    io.Writer
	Format string
}

func (r *Reporter) Report(unused *KeySet, results []PruneResult) error {
	switch r.Format {
	case FormatYaml:
		report := Report{UnusedKeys: unused.Keys(), Files: results}
		if report.UnusedKeys == nil {
			report.UnusedKeys = []string{}
		}
		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		_, err = r.Out.Write(out)
		return err
	default:
		for _, key := range unused.Keys() {
			if _, err := fmt.Fprintln(r.Out, key); err != nil {
				return err
			}
		}
		return nil
	}
}

func NewReporter(out io.Writer, format string) *Reporter {
	return &Reporter{Out: out, Format: format}
}
