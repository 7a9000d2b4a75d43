package advisory

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when settings carry no model name.
const DefaultModel = "gemini-1.5-flash"

const explainPromptFormat = `You are a TL 9000 QMS expert.
Explain the following requirement clearly and provide 3 concrete examples of evidence that an auditor would look for.
Keep the explanation professional and concise.

Clause: %s
Requirement: %s

Format the response in Markdown.`

const questionsPromptFormat = `As a TL 9000 Internal Auditor, generate 5 key audit questions to ask a process owner about the following requirement:

Clause: %s
Requirement: %s

Focus on both process adherence and measurement data if applicable.`

// GeminiAdvisor produces guidance text through the Google Gemini API.
type GeminiAdvisor struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiAdvisor builds a Gemini-backed advisor for the given API key.
func NewGeminiAdvisor(ctx context.Context, apiKey, modelName string) (*GeminiAdvisor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	if modelName == "" {
		modelName = DefaultModel
	}
	model := client.GenerativeModel(modelName)

	return &GeminiAdvisor{client: client, model: model}, nil
}

// Explain generates the expert explanation with evidence examples.
func (g *GeminiAdvisor) Explain(ctx context.Context, clause, description string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(explainPromptFormat, clause, description))
}

// AuditQuestions generates internal audit questions for a process owner.
func (g *GeminiAdvisor) AuditQuestions(ctx context.Context, clause, requirement string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(questionsPromptFormat, clause, requirement))
}

// Close releases the underlying API client.
func (g *GeminiAdvisor) Close() error {
	return g.client.Close()
}

// generate sends one prompt and concatenates the text parts of the first candidate.
func (g *GeminiAdvisor) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	if text == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}
