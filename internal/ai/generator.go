package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Template is a named prompt whose structured output follows Schema.
type Template struct {
	Name   string
	Prompt *template.Template
	Schema *genai.Schema
}

// Render executes the prompt template against input.
func (t Template) Render(input any) (string, error) {
	var buf bytes.Buffer
	if err := t.Prompt.Execute(&buf, input); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Generator turns a template plus structured input into structured output.
// out must be a pointer to a JSON-decodable value.
type Generator interface {
	Generate(ctx context.Context, tmpl Template, input any, out any) error
}

var ErrEmptyResponse = errors.New("generator returned no text")

// GeminiGenerator implements Generator on the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model, logger: logger}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, tmpl Template, input any, out any) error {
	prompt, err := tmpl.Render(input)
	if err != nil {
		return err
	}

	g.logger.Debug("generating", zap.String("template", tmpl.Name), zap.String("model", g.model))
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   tmpl.Schema,
	})
	if err != nil {
		g.logger.Error("generate failed", zap.String("template", tmpl.Name), zap.Error(err))
		return fmt.Errorf("GenAI generate %s: %w", tmpl.Name, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return ErrEmptyResponse
	}
	return decodeOutput(tmpl.Name, text, out)
}

// decodeOutput parses a JSON answer, tolerating a fenced ```json block.
func decodeOutput(name, text string, out any) error {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), out); err != nil {
		return fmt.Errorf("decode %s output: %w", name, err)
	}
	return nil
}
