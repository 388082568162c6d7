// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/meshintel/research-assistant/internal/inference"
	"github.com/meshintel/research-assistant/internal/pipeline"
	"github.com/meshintel/research-assistant/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [topic...]",
	Short: "Run the two-stage research chain for a topic",
	Long: `Research asks the model for the five most important research questions
about the topic, then feeds those questions back for a deep analysis with
per-question reasoning, cross-cutting themes, and recommendations.

The topic may be given as arguments or with --topic. The API key is read
from --api-key, the RESEARCH_ASSISTANT_API_KEY environment variable, or
.secrets/groq-api-key, in that order.`,
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" && len(args) > 0 {
		topic = strings.Join(args, " ")
	}
	if strings.TrimSpace(topic) == "" {
		return fmt.Errorf("topic required: pass it as arguments or with --topic")
	}

	flagKey, _ := cmd.Flags().GetString("api-key")
	credential := resolveCredential(flagKey)
	if !pipeline.IsReady(credential) {
		return fmt.Errorf("no API key: set --api-key, RESEARCH_ASSISTANT_API_KEY, or .secrets/groq-api-key")
	}

	cfg := assistantConfig(cmd)

	client := &inference.Client{
		APIKey:     credential,
		BaseURL:    cfg.BaseURL,
		MaxRetries: cfg.MaxRetries,
		Client:     &http.Client{Timeout: cfg.Timeout},
	}

	p := pipeline.New(client, cfg, os.Stderr)
	result, err := p.Run(context.Background(), topic, credential)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	return formatResult(result, format, os.Stdout)
}

// resolveCredential picks the API key: flag, then environment, then the
// secrets directory. The credential is held for this invocation only and
// never written anywhere.
func resolveCredential(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := viper.GetString("api_key"); v != "" {
		return v
	}
	return secretDefault("groq-api-key", "")
}

// assistantConfig merges the config file and environment (via viper) with
// command-line flags, flags winning.
func assistantConfig(cmd *cobra.Command) types.AssistantConfig {
	cfg := types.AssistantConfig{
		Model:               viper.GetString("model"),
		BaseURL:             viper.GetString("base_url"),
		Timeout:             viper.GetDuration("timeout"),
		MaxRetries:          viper.GetInt("max_retries"),
		AnalysisTemperature: viper.GetFloat64("analysis_temperature"),
	}

	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Model = v
	}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if cmd.Flags().Changed("max-retries") {
		cfg.MaxRetries, _ = cmd.Flags().GetInt("max-retries")
	}
	return cfg
}

func formatResult(result *types.ResearchResult, format string, w io.Writer) error {
	switch format {
	case "", "text":
		fmt.Fprintf(w, "## Research Questions\n\n%s\n\n## Research Analysis\n\n%s\n",
			result.Questions, result.Analysis)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
	}
}

func init() {
	researchCmd.Flags().String("topic", "", "research topic (alternative to positional arguments)")
	researchCmd.Flags().String("api-key", "", "API key for the inference endpoint")
	researchCmd.Flags().String("model", "", "chat model identifier (default: "+pipeline.DefaultModel+")")
	researchCmd.Flags().String("base-url", "", "OpenAI-compatible endpoint root (default: "+inference.DefaultBaseURL+")")
	researchCmd.Flags().Duration("timeout", 0*time.Second, "HTTP request timeout (0 = wait indefinitely)")
	researchCmd.Flags().Int("max-retries", 0, "rate-limit retries per stage (0 = single attempt)")
	researchCmd.Flags().String("format", "text", "output format: text, json, or yaml")

	rootCmd.AddCommand(researchCmd)
}
