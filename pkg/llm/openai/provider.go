package openai

import (
	"context"
	"errors"
	"fmt"

	"digital-twin-be/pkg/llm"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultMaxTokens = 500

// Provider talks to any OpenAI-compatible chat completions endpoint
// (OpenAI, Groq, vLLM).
type Provider struct {
	client openai.Client
	model  string
}

var _ llm.LLMProvider = (*Provider)(nil)

func NewProvider(apiKey, baseURL, model string) *Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Provider{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (p *Provider) params(history []llm.Message, opts ...llm.Option) openai.ChatCompletionNewParams {
	options := llm.ApplyOptions(llm.Options{
		Temperature: 0.7,
		MaxTokens:   defaultMaxTokens,
		Model:       p.model,
	}, opts...)

	return openai.ChatCompletionNewParams{
		Model:               options.Model,
		Messages:            convertMessages(history),
		MaxCompletionTokens: openai.Int(int64(options.MaxTokens)),
		Temperature:         openai.Float(options.Temperature),
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, p.params(history, opts...))
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat: no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *Provider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (<-chan llm.StreamToken, error) {
	stream := p.client.Chat.Completions.NewStreaming(ctx, p.params(history, opts...))
	if err := stream.Err(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("openai stream: %w", err)
	}

	tokens := make(chan llm.StreamToken)
	go func() {
		defer close(tokens)
		defer stream.Close()

		emit := func(tok llm.StreamToken) bool {
			select {
			case tokens <- tok:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}
			if !emit(llm.StreamToken{Content: chunk.Choices[0].Delta.Content}) {
				return
			}
		}
		if err := stream.Err(); err != nil {
			emit(llm.StreamToken{Error: fmt.Errorf("openai stream: %w", err)})
			return
		}
		emit(llm.StreamToken{Done: true})
	}()

	return tokens, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func convertMessages(msgs []llm.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case llm.RoleSystem:
			result = append(result, openai.SystemMessage(msg.Content))
		case llm.RoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}
