package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/dmgcalc/internal/model"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

func validateFormat(format string) error {
	switch format {
	case formatYAML, formatJSON:
		return nil
	}
	return model.Validationf("unknown output format %q (want yaml or json)", format)
}

// writeOutput encodes v to path, or to w when path is empty.
func writeOutput(w io.Writer, path, format string, v any) (err error) {
	if path != "" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("creating output %s: %w", path, cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output %s: %w", path, cerr)
			}
		}()
		w = f
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
	}
	return nil
}

// addOutputFlags registers the shared --format and --output flags.
func addOutputFlags(fs *pflag.FlagSet, o *outputFlags) {
	fs.StringVarP(&o.format, "format", "f", formatYAML, "Output format: yaml or json")
	fs.StringVarP(&o.path, "output", "o", "", "Write output to file instead of stdout")
}

type outputFlags struct {
	format string
	path   string
}

func (o outputFlags) write(w io.Writer, v any) error {
	return writeOutput(w, o.path, o.format, v)
}
