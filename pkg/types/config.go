package types

// ConversionConfig holds settings for the convert stage.
type ConversionConfig struct {
	// InputDir is the root directory scanned for .m4a files (default "data/train").
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// ReportJSON is the path of the cumulative history document
	// (default "data/train/conversion_report.json").
	ReportJSON string `json:"report_json" yaml:"report_json"`

	// ReportCSV is the path of the last-run summary
	// (default "data/train/last_conversion_report.csv").
	ReportCSV string `json:"report_csv" yaml:"report_csv"`

	// Quality is the LAME VBR quality passed as -q:a (0 best .. 9 smallest,
	// default 2).
	Quality int `json:"quality" yaml:"quality"`

	// FFmpegBinary, when set, bypasses encoder discovery and uses this path.
	FFmpegBinary string `json:"ffmpeg_binary,omitempty" yaml:"ffmpeg_binary,omitempty"`
}

// RemapConfig holds settings for the Label Studio remap stage.
type RemapConfig struct {
	// AudioDir is the directory checked for the remapped MP3 files.
	// Empty means the input JSON's directory.
	AudioDir string `json:"audio_dir" yaml:"audio_dir"`

	// URLTemplate builds the rewritten data.audio value; "{filename}" is
	// replaced with the clean MP3 name.
	URLTemplate string `json:"url_template" yaml:"url_template"`
}

// IndexConfig holds settings for the run index database.
type IndexConfig struct {
	// Dir is the directory holding the SQLite run index
	// (default "<input-dir>/index").
	Dir string `json:"dir" yaml:"dir"`

	// MaxRuns is the default number of runs listed by report commands
	// (default 20).
	MaxRuns int `json:"max_runs" yaml:"max_runs"`
}
