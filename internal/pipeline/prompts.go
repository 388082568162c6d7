// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"text/template"
)

// Stage names, used as context keys and in failure reports.
const (
	StageQuestions = "questions"
	StageAnalysis  = "analysis"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "deepseek-r1-distill-llama-70b"

// DefaultAnalysisTemperature balances creativity and accuracy for the
// analysis stage. The questions stage always uses the endpoint default.
const DefaultAnalysisTemperature = 0.6

// questionsTmpl asks for the key research questions about the topic. The
// topic is interpolated verbatim; it is opaque user text, not escaped.
var questionsTmpl = template.Must(template.New(StageQuestions).Parse(
	`Suggest a list of 5 most important questions to research on the topic: {{.Topic}}`))

// analysisTmpl interpolates the topic and the full, unmodified stage-1
// output, then lays out the expected analytical structure.
var analysisTmpl = template.Must(template.New(StageAnalysis).Parse(
	`Based on these questions about {{.Topic}}:
{{.Questions}}

Please provide a comprehensive research analysis following these steps:

1. For each question:
   - Use chain-of-thought reasoning to break down the problem
   - Consider multiple perspectives and approaches
   - Provide evidence and logical arguments
   - Draw connections between related concepts

2. After analyzing each question:
   - Identify common themes and patterns
   - Discuss potential implications
   - Suggest areas for further investigation

3. Conclude with:
   - A synthesis of key findings
   - Practical applications or recommendations
   - Critical evaluation of the analysis

Please structure your response clearly and use logical reasoning throughout.`))

func questionsPrompt(acc *Context) (string, error) {
	return render(questionsTmpl, struct{ Topic string }{Topic: acc.Topic})
}

func analysisPrompt(acc *Context) (string, error) {
	return render(analysisTmpl, struct{ Topic, Questions string }{
		Topic:     acc.Topic,
		Questions: acc.Outputs[StageQuestions],
	})
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
