package generator

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"marketing_slogan_generator/config"
)

// OpenAILLM implements LLMClient using the official openai-go SDK (chat completions).
// It talks to Azure OpenAI or to any OpenAI-compatible endpoint.
type OpenAILLM struct {
	Model    string
	Opts     []option.RequestOption
	Sampling Sampling
}

// NewOpenAILLMFromConfig validates cfg and prepares request options.
// extra options are applied last, so callers can swap the HTTP client or base URL.
func NewOpenAILLMFromConfig(cfg config.LLM, extra ...option.RequestOption) (*OpenAILLM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	switch cfg.Provider {
	case config.ProviderOpenAI:
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
	default:
		opts = append(opts,
			azure.WithEndpoint(cfg.Endpoint, cfg.APIVersion),
			azure.WithAPIKey(cfg.APIKey),
		)
	}
	opts = append(opts, extra...)
	return &OpenAILLM{
		Model: cfg.ModelName(),
		Opts:  opts,
		Sampling: Sampling{
			MaxCompletionTokens: cfg.MaxCompletionTokens,
			Temperature:         cfg.Temperature,
			TopP:                cfg.TopP,
		},
	}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.Opts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
	}
	if o.Sampling.MaxCompletionTokens > 0 {
		params.MaxCompletionTokens = openai.Int(o.Sampling.MaxCompletionTokens)
	}
	if o.Sampling.Temperature != nil {
		params.Temperature = openai.Float(*o.Sampling.Temperature)
	}
	if o.Sampling.TopP != nil {
		params.TopP = openai.Float(*o.Sampling.TopP)
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
