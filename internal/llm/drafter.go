// Package llm drafts Jira issues from natural-language requests.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// Drafter turns a natural-language request into an issue Draft.
type Drafter interface {
	Draft(ctx context.Context, request, systemPrompt, contextContent string) (Draft, error)
}

// OpenAIDrafter drafts issues with an OpenAI chat model.
type OpenAIDrafter struct {
	client    *openai.Client
	modelName string
}

// NewOpenAIDrafter wraps a configured go-openai client. An empty model name falls back to gpt-4o.
func NewOpenAIDrafter(client *openai.Client, modelName string) (*OpenAIDrafter, error) {
	if client == nil {
		return nil, ErrClientNil
	}
	if modelName == "" {
		log.Warn().Msg("modelName is empty for OpenAIDrafter, defaulting to gpt-4o")
		modelName = openai.GPT4o
	}
	return &OpenAIDrafter{client: client, modelName: modelName}, nil
}

// Draft sends the system prompt and the assembled user prompt, asking for a JSON object,
// and parses the first choice.
func (o *OpenAIDrafter) Draft(ctx context.Context, request, systemPrompt, contextContent string) (Draft, error) {
	if strings.TrimSpace(request) == "" {
		return Draft{}, ErrRequestEmpty
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: BuildPrompt(request, contextContent),
	})

	req := openai.ChatCompletionRequest{
		Model:    o.modelName,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	log.Debug().Str("model", o.modelName).Int("messages", len(messages)).Msg("Sending OpenAI chat completion request")

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("OpenAI API call failed")
		return Draft{}, fmt.Errorf("%w: %w", ErrCompletion, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return Draft{}, ErrEmptyResponse
	}

	draft, err := ParseDraft(resp.Choices[0].Message.Content)
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %w", ErrResponseParse, err)
	}
	log.Info().Str("summary", draft.Summary).Msg("Drafted issue with OpenAI")
	return draft, nil
}
