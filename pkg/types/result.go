// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResearchResult is the output of one complete pipeline run: both stage
// texts, verbatim as the endpoint returned them. A result is created at
// run start and discarded after display; nothing is persisted across runs.
type ResearchResult struct {
	// RunID correlates progress output with a result.
	RunID string `json:"run_id" yaml:"run_id"`

	// Topic is the user-supplied research topic, unmodified.
	Topic string `json:"topic" yaml:"topic"`

	// Questions is the stage-1 text: the generated research questions.
	Questions string `json:"questions" yaml:"questions"`

	// Analysis is the stage-2 text: the deep research analysis.
	Analysis string `json:"analysis" yaml:"analysis"`
}
