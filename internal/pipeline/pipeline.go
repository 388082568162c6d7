// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the two-stage research chain: question generation
// followed by deep analysis. Each stage's raw output becomes literal
// context for the next stage's prompt; the chain halts at the first
// failure and never returns a partial result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/meshintel/research-assistant/internal/inference"
	"github.com/meshintel/research-assistant/pkg/types"
)

// Precondition errors, surfaced before any network call. The user fixes
// these by supplying the missing input; they are not request failures.
var (
	ErrMissingCredential = errors.New("missing API credential")
	ErrEmptyTopic        = errors.New("empty research topic")
)

// Failure reports a stage request that failed. The run as a whole fails:
// output already obtained from earlier stages is discarded.
type Failure struct {
	Stage string
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s stage: %v", f.Stage, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// IsReady reports whether the credential is usable: non-empty after
// trimming whitespace. No side effects. Callers gate all pipeline
// execution on it and prompt the user for a credential when it is false.
func IsReady(credential string) bool {
	return strings.TrimSpace(credential) != ""
}

// Completer abstracts the chat-completions endpoint so tests can supply a
// stub.
type Completer interface {
	Complete(ctx context.Context, req inference.Request) (inference.Response, error)
}

// Context accumulates the original topic and each stage's verbatim output,
// keyed by stage name. Later stages interpolate earlier outputs without
// validation, summarization, or truncation.
type Context struct {
	Topic   string
	Outputs map[string]string
}

// Stage is one request/response exchange within a run. Prompt renders the
// stage prompt from the accumulated context; Temperature nil means the
// endpoint default.
type Stage struct {
	Name        string
	Description string
	Temperature *float64
	Prompt      func(acc *Context) (string, error)
}

// Pipeline runs an ordered list of stages against a completions endpoint.
// It holds no cross-run state and is safe to reuse across sequential runs.
type Pipeline struct {
	completer Completer
	model     string
	stages    []Stage
	progress  io.Writer
}

// New returns a pipeline with the standard two research stages. Progress
// lines are written to progress as each stage starts; pass io.Discard to
// silence them. Zero-valued config fields fall back to package defaults.
func New(completer Completer, cfg types.AssistantConfig, progress io.Writer) *Pipeline {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	temp := cfg.AnalysisTemperature
	if temp == 0 {
		temp = DefaultAnalysisTemperature
	}
	return &Pipeline{
		completer: completer,
		model:     model,
		stages:    researchStages(temp),
		progress:  progress,
	}
}

// researchStages builds the two-stage chain. Stage 1 uses the endpoint's
// default temperature; stage 2 pins its own.
func researchStages(analysisTemp float64) []Stage {
	return []Stage{
		{
			Name:        StageQuestions,
			Description: "generating research questions",
			Prompt:      questionsPrompt,
		},
		{
			Name:        StageAnalysis,
			Description: "running deep analysis",
			Temperature: &analysisTemp,
			Prompt:      analysisPrompt,
		},
	}
}

// Run executes the stages in order for one topic. It returns a complete
// ResearchResult or a single error: ErrMissingCredential or ErrEmptyTopic
// before any request is issued, or a *Failure naming the stage whose
// request failed. Stage N+1 is never attempted after stage N fails.
func (p *Pipeline) Run(ctx context.Context, topic, credential string) (*types.ResearchResult, error) {
	if !IsReady(credential) {
		return nil, ErrMissingCredential
	}
	if strings.TrimSpace(topic) == "" {
		return nil, ErrEmptyTopic
	}

	runID := uuid.New().String()
	acc := &Context{Topic: topic, Outputs: make(map[string]string)}

	for _, stage := range p.stages {
		fmt.Fprintf(p.progress, "[%s] %s...\n", runID[:8], stage.Description)

		prompt, err := stage.Prompt(acc)
		if err != nil {
			return nil, &Failure{Stage: stage.Name, Err: err}
		}

		resp, err := p.completer.Complete(ctx, inference.Request{
			Model:       p.model,
			Messages:    []inference.Message{{Role: "user", Content: prompt}},
			Temperature: stage.Temperature,
		})
		if err != nil {
			return nil, &Failure{Stage: stage.Name, Err: err}
		}

		acc.Outputs[stage.Name] = resp.Text
	}

	return &types.ResearchResult{
		RunID:     runID,
		Topic:     topic,
		Questions: acc.Outputs[StageQuestions],
		Analysis:  acc.Outputs[StageAnalysis],
	}, nil
}
