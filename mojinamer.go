// Package mojinamer renames the image files in a directory using short
// descriptions produced by a vision-capable LLM.
package mojinamer

import (
	"fmt"
	"net/http"

	"mojinamer/describer"
	"mojinamer/internal/llama"
	"mojinamer/internal/openai"
)

// DefaultModel is the OpenAI model used when none is specified.
const DefaultModel = "gpt-4o-mini"

type InitOptions struct {
	// APIKey is the OpenAI credential. Required unless LlamaServer is set.
	APIKey string
	// Model is the OpenAI model, DefaultModel if empty.
	Model string

	// LlamaServer selects a local llama.cpp server instead of OpenAI.
	LlamaServer string
	LlamaSeed   int

	HTTPClient *http.Client // if nil uses http.DefaultClient
}

type Namer struct {
	describer.Describer
}

// Init selects and constructs the describer backend.
func Init(nio InitOptions) (*Namer, error) {
	httpClient := nio.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if nio.LlamaServer != "" {
		return &Namer{llama.Init(nio.LlamaServer, nio.LlamaSeed, httpClient)}, nil
	}

	if nio.APIKey == "" {
		return nil, fmt.Errorf("no API key provided")
	}
	model := nio.Model
	if model == "" {
		model = DefaultModel
	}

	return &Namer{openai.Init(nio.APIKey, model, httpClient)}, nil
}
