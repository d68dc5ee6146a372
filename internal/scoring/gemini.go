package scoring

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const gradingPrompt = `You are grading a student's journal-style writing assignment.

Assignment: %s
%s

Student submission:
---
%s
---

Score the submission from 0 to %d based on relevance, depth, and writing
quality, and write 2-4 sentences of constructive feedback addressed to the
student. Respond with JSON: {"score": <int>, "feedback": "<string>"}`

// GeminiScorer grades submissions with Google Gemini using JSON response
// mode.
type GeminiScorer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiScorer takes the API key explicitly; it is never read from the
// environment here.
func NewGeminiScorer(ctx context.Context, apiKey, modelName string) (*GeminiScorer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	return &GeminiScorer{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiScorer) Score(ctx context.Context, assignmentTitle, assignmentDesc, content string, maxPoints int) (*Result, error) {
	prompt := fmt.Sprintf(gradingPrompt, assignmentTitle, assignmentDesc, content, maxPoints)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from model")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok {
			continue
		}
		var result Result
		if err := json.Unmarshal([]byte(txt), &result); err != nil {
			return nil, fmt.Errorf("failed to parse grading response: %w", err)
		}
		if result.Score < 0 {
			result.Score = 0
		}
		if result.Score > maxPoints {
			result.Score = maxPoints
		}
		return &result, nil
	}

	return nil, fmt.Errorf("no text content in response")
}

func (g *GeminiScorer) Close() {
	g.client.Close()
}
