// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// VerifyStatus indicates the validation outcome recorded for a run.
type VerifyStatus string

const (
	// VerifySkipped means veraPDF was not requested for the run.
	VerifySkipped VerifyStatus = "skipped"
	// VerifyPassed means veraPDF reported the file compliant.
	VerifyPassed VerifyStatus = "passed"
	// VerifyFailed means veraPDF reported compliance failures.
	VerifyFailed VerifyStatus = "failed"
)

// RunRecord describes one completed (or aborted) pipeline run as stored in
// the history database.
type RunRecord struct {
	// ID is the database row identifier.
	ID int64 `json:"id" yaml:"id"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Duration is the wall-clock time of the whole pipeline.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// TexFile is the absolute path of the main tex file.
	TexFile string `json:"tex_file" yaml:"tex_file"`

	// Profile is the conformance profile, e.g. "1b".
	Profile string `json:"profile" yaml:"profile"`

	// OutputPath is the absolute path of the generated PDF.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Succeeded reports whether every pipeline step completed.
	Succeeded bool `json:"succeeded" yaml:"succeeded"`

	// FailedStep names the step that aborted the pipeline, if any.
	FailedStep string `json:"failed_step,omitempty" yaml:"failed_step,omitempty"`

	// Verify is the validation outcome.
	Verify VerifyStatus `json:"verify" yaml:"verify"`
}
