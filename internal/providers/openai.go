package providers

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator produces plan documents through the OpenAI chat API in
// JSON mode, with the document shape pinned down by a system message.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

const planShapeInstruction = `You are a study plan generator. Respond with a single JSON object of the form
{"overview": string, "schedule": [{"dayOffset": integer, "theme": string, "tasks": [{"title": string, "description": string, "minutes": integer}]}]}.
dayOffset is 0 for the start date, 1 for the next day, and so on. Every field is mandatory. Return JSON only, no additional text.`

// NewOpenAIGenerator creates a new OpenAI-backed generator
func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Name identifies the provider for logs and metrics
func (g *OpenAIGenerator) Name() string { return "openai" }

// GeneratePlan sends the prompt and returns the raw JSON text
func (g *OpenAIGenerator) GeneratePlan(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: planShapeInstruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content generated")
	}
	return resp.Choices[0].Message.Content, nil
}
