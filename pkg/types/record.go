// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus classifies the outcome of one source file in a run.
type ConversionStatus string

const (
	StatusConverted ConversionStatus = "converted"
	StatusSkipped   ConversionStatus = "skipped"
	StatusFailed    ConversionStatus = "failed"
)

// ConversionRecord is the outcome of one source file in one run. Records are
// immutable once created; repeated runs produce fresh records that replace
// the previous entry for the same source path in the history.
type ConversionRecord struct {
	// SourcePath is the .m4a file the record describes.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// TargetPath is the sibling .mp3 path, whether or not it was produced.
	TargetPath string `json:"target_path" yaml:"target_path"`

	// Status is converted, skipped, or failed.
	Status ConversionStatus `json:"status" yaml:"status"`

	// ErrorDetail carries encoder stderr or a launch error for failed
	// records, and "target_exists" for skipped ones. Empty on success.
	ErrorDetail string `json:"error_detail,omitempty" yaml:"error_detail,omitempty"`

	// Timestamp is when the record was created, UTC.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// History is the cumulative cross-run outcome map, keyed by source path.
// Later runs replace the entry for a path; paths not seen in a run keep
// their previous record.
type History map[string]ConversionRecord
