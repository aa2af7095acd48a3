// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ToolsConfig holds the names or explicit paths of the external executables
// the pipeline drives. An empty value means the tool is resolved from PATH
// under its conventional name.
type ToolsConfig struct {
	// PDFLaTeX is the LaTeX compiler executable.
	PDFLaTeX string `json:"pdflatex" yaml:"pdflatex"`

	// BibTeX is the bibliography processor executable.
	BibTeX string `json:"bibtex" yaml:"bibtex"`

	// Ghostscript is the PostScript/PDF interpreter executable.
	Ghostscript string `json:"ghostscript" yaml:"ghostscript"`

	// ExifTool is the metadata editor executable.
	ExifTool string `json:"exiftool" yaml:"exiftool"`

	// QPDF is the PDF structure tool executable.
	QPDF string `json:"qpdf" yaml:"qpdf"`

	// VeraPDF is the PDF/A validator executable. Only required with --verify.
	VeraPDF string `json:"verapdf" yaml:"verapdf"`
}

// CompileConfig holds settings for the LaTeX compilation stage.
type CompileConfig struct {
	// Level is the PDF/A conformance level: "a", "b", or "u".
	Level string `json:"level" yaml:"level"`

	// Version is the PDF/A standard version: 1, 2, or 3.
	Version int `json:"version" yaml:"version"`

	// SkipBibtex disables the bibliography pass even when the aux file
	// contains citations.
	SkipBibtex bool `json:"skip_bibtex" yaml:"skip_bibtex"`

	// ExtraArgs are additional arguments appended to every pdflatex call.
	ExtraArgs []string `json:"extra_args,omitempty" yaml:"extra_args,omitempty"`
}

// OutputConfig holds settings for the generated PDF location.
type OutputConfig struct {
	// Dir is the directory for the generated PDF. Defaults to the
	// project directory of the main tex file.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// File is the generated PDF filename. Defaults to
	// "<stem>-PDFA-<version><level>.pdf".
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// MetadataConfig holds settings for the XMP metadata stage.
type MetadataConfig struct {
	// File is an optional YAML metadata document rendered into the
	// project's .xmpdata file.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Ignore skips the metadata stage entirely, for projects that
	// already maintain their own .xmpdata file.
	Ignore bool `json:"ignore" yaml:"ignore"`
}

// HistoryConfig holds settings for the run history database.
type HistoryConfig struct {
	// Dir is the directory containing the history database. Defaults to
	// ~/.local/share/latex2pdfa.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// MaxRuns caps the number of retained run records (0 = unlimited).
	MaxRuns int `json:"max_runs" yaml:"max_runs"`
}

// PipelineConfig groups all stage configurations for a compile run.
type PipelineConfig struct {
	Tools    ToolsConfig    `json:"tools" yaml:"tools"`
	Compile  CompileConfig  `json:"compile" yaml:"compile"`
	Output   OutputConfig   `json:"output" yaml:"output"`
	Metadata MetadataConfig `json:"metadata" yaml:"metadata"`
	History  HistoryConfig  `json:"history" yaml:"history"`

	// Verify runs veraPDF on the final file.
	Verify bool `json:"verify" yaml:"verify"`

	// Clean removes auxiliary compilation artifacts after a successful run.
	Clean bool `json:"clean" yaml:"clean"`

	// Verbose streams external tool output instead of capturing it.
	Verbose bool `json:"verbose" yaml:"verbose"`
}
