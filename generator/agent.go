package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"marketing_slogan_generator/config"
	"marketing_slogan_generator/metrics"
)

var (
	// ErrConfigMissing means no request was attempted because credentials are absent.
	ErrConfigMissing = errors.New("completion configuration missing")
	// ErrCompletionFailed covers every failure of the remote call itself.
	ErrCompletionFailed = errors.New("completion request failed")
)

// CompletionError wraps the transport or API failure of one completion call.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	return e.Err.Error()
}

func (e *CompletionError) Unwrap() []error {
	return []error{ErrCompletionFailed, e.Err}
}

// Agent renders prompts and sends them to the completion service.
// It holds no per-call state and is safe for concurrent use.
type Agent struct {
	cfg      config.LLM
	llm      LLMClient
	provider string
	reqOpts  []option.RequestOption
	logger   zerolog.Logger
}

type Option func(*Agent)

// WithLLM bypasses the configured service. Configuration is not validated then.
func WithLLM(llm LLMClient) Option {
	return func(a *Agent) {
		a.llm = llm
		a.provider = "custom"
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

// WithRequestOptions appends openai-go request options, e.g. a custom HTTP client.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(a *Agent) { a.reqOpts = append(a.reqOpts, opts...) }
}

func NewAgent(cfg config.LLM, opts ...Option) *Agent {
	a := &Agent{cfg: cfg, provider: cfg.Provider, logger: zerolog.Nop()}
	if a.provider == "" {
		a.provider = config.ProviderAzure
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Complete sends one rendered prompt. Errors match ErrConfigMissing or ErrCompletionFailed.
func (a *Agent) Complete(ctx context.Context, prompt string) (string, error) {
	llm := a.llm
	if llm == nil {
		built, err := NewOpenAILLMFromConfig(a.cfg, a.reqOpts...)
		if err != nil {
			metrics.IncError("config_missing")
			return "", fmt.Errorf("%w: %w", ErrConfigMissing, err)
		}
		llm = built
	}

	model := a.cfg.ModelName()
	metrics.IncCompletionRequest(a.provider, model)
	start := time.Now()
	text, err := llm.Complete(ctx, NewPrompt(prompt))
	metrics.ObserveCompletion(a.provider, time.Since(start))
	if err != nil {
		metrics.IncError("request_failed")
		return "", &CompletionError{Err: err}
	}
	a.logger.Debug().
		Str("provider", a.provider).
		Str("model", model).
		Dur("took", time.Since(start)).
		Msg("completion received")
	return text, nil
}

// Generate is Complete for display: failures come back as sentinel strings, never as errors.
func (a *Agent) Generate(ctx context.Context, prompt string) string {
	text, err := a.Complete(ctx, prompt)
	if err != nil {
		return a.ErrorText(err)
	}
	return text
}

// GenerateSlogans renders req, sends it and tags the outcome with a fresh ID.
func (a *Agent) GenerateSlogans(ctx context.Context, req SloganRequest) Result {
	res := Result{
		ID:     uuid.NewString(),
		Style:  req.Style,
		Prompt: Render(req),
	}
	metrics.IncPromptRendered(req.Style.String())
	log := a.logger.With().Str("id", res.ID).Str("style", req.Style.String()).Logger()
	log.Debug().Str("product", req.ProductName).Str("audience", req.TargetAudience).Msg("prompt rendered")

	text, err := a.Complete(ctx, res.Prompt)
	if err != nil {
		log.Warn().Err(err).Msg("slogan generation failed")
		res.Err = err
		res.Text = a.ErrorText(err)
		return res
	}
	log.Info().Int("chars", len(text)).Msg("slogans generated")
	res.Text = text
	return res
}

// ErrorText converts a Complete error into the user-facing sentinel string.
func (a *Agent) ErrorText(err error) string {
	if errors.Is(err, ErrConfigMissing) {
		if a.provider == config.ProviderOpenAI {
			return "ERROR: Missing OpenAI configuration. Please check your .env file."
		}
		return "ERROR: Missing Azure OpenAI configuration. Please check your .env file."
	}
	var ce *CompletionError
	if errors.As(err, &ce) {
		err = ce.Err
	}
	return fmt.Sprintf("Error generating slogan: %s", err)
}
