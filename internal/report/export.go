// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/audioprep/pkg/types"
)

// ExportYAML writes the history as a YAML document.
func ExportYAML(w io.Writer, h types.History) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(h); err != nil {
		return fmt.Errorf("encoding history as YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the history as an indented JSON document.
func ExportJSON(w io.Writer, h types.History) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(h); err != nil {
		return fmt.Errorf("encoding history as JSON: %w", err)
	}
	return nil
}
